package domain

// Значения конфигурации по умолчанию
const (
	DefaultSlotGranularityMinutes  = 60
	DefaultMinBookingNoticeMinutes = 120 // 2 часа
	DefaultAdvanceBookingDays      = 60
	DefaultMinBookingValue         = 0 // 0 = без минимальной суммы заказа
	DefaultTimezone                = "UTC"
)

// Константы бизнес-валидации
const (
	MinSlotGranularityMinutes = 15
	MaxSlotGranularityMinutes = 240
	MaxBookingDurationMinutes = 720 // 12 часов, дольше одна уборка не длится
	MaxNotesLength            = 1000
	MaxCancellationReason     = 500
	MaxAddonQuantityFallback  = 10 // кламп количества аддона, если maxQuantity не задан
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы бронирований, занимающих свой интервал целиком
// Используются движком доступности: только эти статусы блокируют слоты
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы бронирований, не занимающих слот
// Отмененные хранятся для истории, завершенные остались в прошлом
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
