package settings

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек компании
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.CompanySettings, error)
	Upsert(ctx context.Context, s *domain.CompanySettings) (*domain.CompanySettings, error)
}

// AvailabilityCache интерфейс кеша доступности
type AvailabilityCache interface {
	InvalidateAll(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
