package get_availability

import (
	"context"
	"time"

	engine "github.com/m04kA/SMC-CleaningService/internal/availability"
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

// AvailabilityCache интерфейс кеша дневных представлений
// Кеш необязателен: промах или ошибка означают расчет по базе
type AvailabilityCache interface {
	GetDaySlots(ctx context.Context, date time.Time, durationMinutes int) ([]engine.Slot, bool)
	SetDaySlots(ctx context.Context, date time.Time, durationMinutes int, slots []engine.Slot)
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
