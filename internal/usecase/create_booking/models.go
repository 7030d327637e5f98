package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// ItemRequest позиция бронирования: услуга с выбором клиента
type ItemRequest struct {
	ServiceID int64
	Quantity  int
	Selection domain.Selection
}

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string

	Date      time.Time        // Календарная дата (без времени)
	StartTime types.TimeString // Время начала, например "10:00"

	Items []ItemRequest
	Notes *string

	// SessionID корзины; после успешного оформления корзина очищается
	SessionID string
}

// ItemResponse позиция созданного бронирования с пересчитанной ценой
type ItemResponse struct {
	ServiceID       int64
	ServiceName     string
	PricingType     string
	Quantity        int
	CalculatedPrice float64
	Breakdown       domain.PriceBreakdown
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                   int64
	CustomerName         string
	BookingDate          time.Time
	StartTime            types.TimeString
	EndTime              types.TimeString
	TotalDurationMinutes int
	TotalPrice           float64
	Status               string
	Items                []ItemResponse
	CreatedAt            time.Time
}
