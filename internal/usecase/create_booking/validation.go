package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, req.StartTime)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	for _, item := range req.Items {
		if item.ServiceID <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidQuantity)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int, loc *time.Location) error {
	nowInLoc := now.In(loc)
	today := time.Date(nowInLoc.Year(), nowInLoc.Month(), nowInLoc.Day(), 0, 0, 0, 0, loc)
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, loc)

	if requestDateOnly.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что до начала бронирования осталось
// не меньше minBookingNoticeMinutes
func validateNotice(date time.Time, start types.TimeString, now time.Time, noticeMinutes int, loc *time.Location) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, start)
	}

	bookingStart := time.Date(date.Year(), date.Month(), date.Day(), 0, startMin, 0, 0, loc)
	earliest := now.In(loc).Add(time.Duration(noticeMinutes) * time.Minute)

	if bookingStart.Before(earliest) {
		return fmt.Errorf("%w: need at least %d minutes notice", ErrTooSoon, noticeMinutes)
	}

	return nil
}

// validateWithinHours проверяет, что интервал целиком помещается в рабочие часы
// и начало выровнено по сетке слотов
func validateWithinHours(day domain.DaySchedule, start types.TimeString, durationMinutes, granularityMinutes int) error {
	if !day.IsOpen || day.Start.IsZero() || day.End.IsZero() {
		return ErrCompanyClosed
	}

	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, start)
	}
	openMin, err := day.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid business hours", ErrInternal)
	}
	closeMin, err := day.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid business hours", ErrInternal)
	}

	if startMin < openMin || startMin+durationMinutes > closeMin {
		return ErrOutsideBusinessHours
	}

	// Разрешены только кандидаты с сетки доступности
	if (startMin-openMin)%granularityMinutes != 0 {
		return fmt.Errorf("%w: startTime is not aligned to the slot grid", ErrInvalidInput)
	}

	return nil
}
