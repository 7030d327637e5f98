package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create атомарно сохраняет бронирование вместе с позициями
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// List внутри транзакции с фильтром по одной дате блокирует строки (FOR UPDATE)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SettingsRepository интерфейс репозитория настроек компании
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.CompanySettings, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache интерфейс кеша доступности
type AvailabilityCache interface {
	InvalidateDate(ctx context.Context, date time.Time)
}

// AnalyticsProducer интерфейс продюсера аналитических событий
type AnalyticsProducer interface {
	Emit(eventType, sessionID string, payload interface{})
}

// CartStore интерфейс корзины для очистки после оформления
type CartStore interface {
	Clear(ctx context.Context, sessionID string)
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
