package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// AvailabilityCache интерфейс кеша представлений доступности
// Инвалидация после изменения бронирования, чтобы следующее чтение
// сразу отразило освободившийся или занятый слот
type AvailabilityCache interface {
	InvalidateDate(ctx context.Context, date time.Time)
}

// AnalyticsProducer интерфейс отправки аналитических событий
type AnalyticsProducer interface {
	Emit(eventType, sessionID string, payload interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
