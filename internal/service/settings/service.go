package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

// Service сервис настроек компании
type Service struct {
	repo   SettingsRepository
	cache  AvailabilityCache
	logger Logger
}

// NewService создает сервис настроек
func NewService(repo SettingsRepository, cache AvailabilityCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get возвращает настройки компании
// Пока админ не сохранил настройки, строки в базе нет -
// возвращаем настройки по умолчанию
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return models.FromDomainSettings(domain.DefaultSettings()), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(stored), nil
}

// Update полностью заменяет настройки компании
// После сохранения кеш доступности сбрасывается целиком:
// рабочие часы и гранулярность влияют на все даты
func (s *Service) Update(ctx context.Context, req *models.SettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating company settings")

	settings := req.ToDomainSettings()
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateAll(ctx)

	s.logger.Info("Update: company settings saved")
	return models.FromDomainSettings(stored), nil
}

// validateSettings проверяет бизнес-инварианты настроек
func validateSettings(s *domain.CompanySettings) error {
	if s.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		s.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be within [%d, %d]",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}
	if s.MinBookingValue < 0 {
		return fmt.Errorf("%w: minBookingValue must be non-negative", ErrInvalidInput)
	}
	if s.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be non-negative", ErrInvalidInput)
	}
	if s.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: advanceBookingDays must be non-negative", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, s.Timezone)
	}

	days := []domain.DaySchedule{
		s.BusinessHours.Monday, s.BusinessHours.Tuesday, s.BusinessHours.Wednesday,
		s.BusinessHours.Thursday, s.BusinessHours.Friday, s.BusinessHours.Saturday,
		s.BusinessHours.Sunday,
	}
	for _, day := range days {
		if !day.IsOpen {
			continue
		}
		if err := day.Start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid open time %q", ErrInvalidInput, day.Start)
		}
		if err := day.End.Validate(); err != nil {
			return fmt.Errorf("%w: invalid close time %q", ErrInvalidInput, day.End)
		}
		if !day.Start.IsBefore(day.End) {
			return fmt.Errorf("%w: open time %s must be before close time %s",
				ErrInvalidInput, day.Start, day.End)
		}
	}
	return nil
}
