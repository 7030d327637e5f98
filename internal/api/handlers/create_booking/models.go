package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	createBooking "github.com/m04kA/SMC-CleaningService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// ItemRequest позиция бронирования в HTTP-запросе
type ItemRequest struct {
	ServiceID int64            `json:"serviceId"`
	Quantity  int              `json:"quantity"`
	Selection domain.Selection `json:"selection"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone"`
	Address       string        `json:"address"`
	BookingDate   string        `json:"bookingDate"` // "2025-10-15"
	StartTime     string        `json:"startTime"`   // "10:00"
	Items         []ItemRequest `json:"items"`
	Notes         *string       `json:"notes,omitempty"`
}

// ItemResponse позиция бронирования в HTTP-ответе
type ItemResponse struct {
	ServiceID       int64                 `json:"serviceId"`
	ServiceName     string                `json:"serviceName"`
	PricingType     string                `json:"pricingType"`
	Quantity        int                   `json:"quantity"`
	CalculatedPrice float64               `json:"calculatedPrice"`
	Breakdown       domain.PriceBreakdown `json:"priceBreakdown"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                   int64          `json:"id"`
	CustomerName         string         `json:"customerName"`
	BookingDate          string         `json:"bookingDate"`
	StartTime            string         `json:"startTime"`
	EndTime              string         `json:"endTime"`
	TotalDurationMinutes int            `json:"totalDurationMinutes"`
	TotalPrice           float64        `json:"totalPrice"`
	Status               string         `json:"status"`
	Items                []ItemResponse `json:"items"`
	CreatedAt            string         `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(sessionID string) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	items := make([]createBooking.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, createBooking.ItemRequest{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			Selection: item.Selection,
		})
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Address:       r.Address,
		Date:          bookingDate,
		StartTime:     startTime,
		Items:         items,
		Notes:         r.Notes,
		SessionID:     sessionID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	items := make([]ItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, ItemResponse{
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			PricingType:     item.PricingType,
			Quantity:        item.Quantity,
			CalculatedPrice: item.CalculatedPrice,
			Breakdown:       item.Breakdown,
		})
	}

	return &BookingResponse{
		ID:                   resp.ID,
		CustomerName:         resp.CustomerName,
		BookingDate:          resp.BookingDate.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		TotalDurationMinutes: resp.TotalDurationMinutes,
		TotalPrice:           resp.TotalPrice,
		Status:               resp.Status,
		Items:                items,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
	}
}
