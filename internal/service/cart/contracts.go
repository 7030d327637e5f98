package cart

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AnalyticsProducer интерфейс отправки аналитических событий
// Отправка fire-and-forget: не блокирует и не возвращает ошибок
type AnalyticsProducer interface {
	Emit(eventType, sessionID string, payload interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
