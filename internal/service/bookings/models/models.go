package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// ErrInvalidStatus возвращается при некорректной строке статуса
var ErrInvalidStatus = errors.New("invalid booking status")

// Request модели

// ListBookingsRequest запрос списка бронирований с фильтрацией
type ListBookingsRequest struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// Response модели

// ItemResponse строка бронирования
type ItemResponse struct {
	ID              int64                 `json:"id"`
	ServiceID       int64                 `json:"serviceId"`
	ServiceName     string                `json:"serviceName"`
	PricingType     string                `json:"pricingType"`
	Quantity        int                   `json:"quantity"`
	Selection       domain.Selection      `json:"selection"`
	CalculatedPrice float64               `json:"calculatedPrice"`
	Breakdown       domain.PriceBreakdown `json:"priceBreakdown"`
}

// BookingResponse бронирование
type BookingResponse struct {
	ID                   int64          `json:"id"`
	CustomerName         string         `json:"customerName"`
	CustomerEmail        string         `json:"customerEmail"`
	CustomerPhone        string         `json:"customerPhone"`
	Address              string         `json:"address"`
	BookingDate          string         `json:"bookingDate"`
	StartTime            string         `json:"startTime"`
	EndTime              string         `json:"endTime"`
	TotalDurationMinutes int            `json:"totalDurationMinutes"`
	TotalPrice           float64        `json:"totalPrice"`
	Status               string         `json:"status"`
	Notes                *string        `json:"notes,omitempty"`
	Items                []ItemResponse `json:"items"`
	CancellationReason   *string        `json:"cancellationReason,omitempty"`
	CancelledAt          *time.Time     `json:"cancelledAt,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ToDomainBookingStatus конвертирует строку в статус с валидацией
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status, ok := domain.ValidStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ToDomainFilter конвертирует запрос списка в domain-фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.BookingsFilter{}, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// FromDomainBooking конвертирует domain-бронирование в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	items := make([]ItemResponse, len(b.Items))
	for i, it := range b.Items {
		items[i] = ItemResponse{
			ID:              it.ID,
			ServiceID:       it.ServiceID,
			ServiceName:     it.ServiceName,
			PricingType:     string(it.PricingType),
			Quantity:        it.Quantity,
			Selection:       it.Selection,
			CalculatedPrice: it.CalculatedPrice,
			Breakdown:       it.Breakdown,
		}
	}

	return &BookingResponse{
		ID:                   b.ID,
		CustomerName:         b.CustomerName,
		CustomerEmail:        b.CustomerEmail,
		CustomerPhone:        b.CustomerPhone,
		Address:              b.Address,
		BookingDate:          b.BookingDate.Format(domain.DateFormat),
		StartTime:            b.StartTime.String(),
		EndTime:              b.EndTime.String(),
		TotalDurationMinutes: b.TotalDurationMinutes,
		TotalPrice:           b.TotalPrice,
		Status:               string(b.Status),
		Notes:                b.Notes,
		Items:                items,
		CancellationReason:   b.CancellationReason,
		CancelledAt:          b.CancelledAt,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain-бронирований в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
		Total:    len(bookings),
	}
	for i, b := range bookings {
		result.Bookings[i] = *FromDomainBooking(b)
	}
	return result
}
