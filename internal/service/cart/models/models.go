package models

import "github.com/m04kA/SMC-CleaningService/internal/domain"

// AddItemRequest запрос на добавление услуги в корзину
type AddItemRequest struct {
	ServiceID int64            `json:"serviceId"`
	Quantity  int              `json:"quantity"`
	Selection domain.Selection `json:"selection"`
}

// ItemResponse строка корзины
type ItemResponse struct {
	ServiceID       int64                 `json:"serviceId"`
	ServiceName     string                `json:"serviceName"`
	PricingType     string                `json:"pricingType"`
	Quantity        int                   `json:"quantity"`
	Selection       domain.Selection      `json:"selection"`
	CalculatedPrice float64               `json:"calculatedPrice"`
	Breakdown       domain.PriceBreakdown `json:"priceBreakdown"`
	DurationMinutes int                   `json:"durationMinutes"`
	DisplayMinimum  *float64              `json:"displayMinimum,omitempty"`
}

// CartResponse корзина с производными суммами
type CartResponse struct {
	SessionID            string         `json:"sessionId"`
	Items                []ItemResponse `json:"items"`
	TotalPrice           float64        `json:"totalPrice"`
	TotalDurationMinutes int            `json:"totalDurationMinutes"`
}
