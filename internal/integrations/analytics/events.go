package analytics

import (
	"encoding/json"
	"time"
)

// Типы аналитических событий
const (
	EventCartItemAdded    = "CartItemAdded"
	EventCartItemRemoved  = "CartItemRemoved"
	EventBookingCreated   = "BookingCreated"
	EventBookingCancelled = "BookingCancelled"
)

// Envelope конверт аналитического события
type Envelope struct {
	EventID      string          `json:"event_id"`      // uuid
	EventType    string          `json:"event_type"`    // одна из констант выше
	EventVersion int             `json:"event_version"` // 1
	OccurredAt   time.Time       `json:"occurred_at"`   // RFC3339
	Producer     string          `json:"producer"`      // "cleaning-site"
	SessionID    string          `json:"session_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

// CartItemPayload payload событий корзины
type CartItemPayload struct {
	ServiceID   int64   `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// BookingPayload payload событий бронирования
type BookingPayload struct {
	BookingID       int64   `json:"booking_id"`
	BookingDate     string  `json:"booking_date"`
	StartTime       string  `json:"start_time"`
	TotalPrice      float64 `json:"total_price"`
	DurationMinutes int     `json:"duration_minutes"`
	ItemCount       int     `json:"item_count"`
}
