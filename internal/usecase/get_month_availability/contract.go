package get_month_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек компании
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.CompanySettings, error)
}

// AvailabilityCache интерфейс кеша месячных представлений
type AvailabilityCache interface {
	GetMonth(ctx context.Context, year, month, durationMinutes int) (map[string]bool, bool)
	SetMonth(ctx context.Context, year, month, durationMinutes int, days map[string]bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
