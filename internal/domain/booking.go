package domain

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking бронирование уборки: дата, интервал времени и состав услуг
// Инвариант: EndTime = StartTime + TotalDurationMinutes
// Подтвержденное или ожидающее бронирование занимает свой интервал целиком -
// календарь общий, одна бригада, один заказ одновременно
type Booking struct {
	ID int64

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string

	BookingDate          time.Time
	StartTime            types.TimeString
	EndTime              types.TimeString
	TotalDurationMinutes int
	TotalPrice           float64
	Status               BookingStatus
	Notes                *string

	Items []BookingItem

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingItem строка бронирования: услуга с выбором клиента и рассчитанной ценой
// Данные услуги денормализованы для истории
type BookingItem struct {
	ID        int64
	BookingID int64
	ServiceID int64

	ServiceName string
	PricingType PricingType

	Quantity  int
	Selection Selection

	CalculatedPrice float64
	Breakdown       PriceBreakdown
}

// PriceBreakdown детализация цены строки бронирования
type PriceBreakdown struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	FinalPrice float64 `json:"finalPrice"`
}

// IsBlocking возвращает true, если бронирование занимает свой слот
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal возвращает true, если из статуса нет переходов
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanTransitionTo проверяет допустимость перехода статуса
// Машина состояний: pending -> confirmed -> completed,
// pending|confirmed -> cancelled, терминальные статусы не меняются
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// ValidStatus проверяет, что строка является допустимым статусом
func ValidStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и завершенные
}
