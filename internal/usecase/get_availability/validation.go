package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TotalDurationMinutes <= 0 {
		return fmt.Errorf("%w: totalDurationMinutes must be positive", ErrInvalidInput)
	}

	if req.TotalDurationMinutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: totalDurationMinutes exceeds %d",
			ErrInvalidInput, domain.MaxBookingDurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата подходит для просмотра доступности
// Даты сравниваются как календарные дни в часовом поясе компании
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int, loc *time.Location) error {
	nowInLoc := now.In(loc)
	today := time.Date(nowInLoc.Year(), nowInLoc.Month(), nowInLoc.Day(), 0, 0, 0, 0, loc)
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, loc)

	if requestDateOnly.Before(today) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие горизонта
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only view %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
