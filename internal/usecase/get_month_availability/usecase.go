package get_month_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	engine "github.com/m04kA/SMC-CleaningService/internal/availability"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
)

// UseCase use case месячного представления доступности
// День доступен тогда и только тогда, когда дневной алгоритм дает
// хотя бы один свободный слот - оба представления используют один движок
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности по дням месяца
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthAvailability: year=%d, month=%d, duration=%d",
		req.Year, req.Month, req.TotalDurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Пробуем кеш
	if cached, ok := uc.cache.GetMonth(ctx, req.Year, req.Month, req.TotalDurationMinutes); ok {
		uc.logger.Info("GetMonthAvailability: cache hit for %04d-%02d", req.Year, req.Month)
		return &Response{Year: req.Year, Month: req.Month, Days: cached}, nil
	}

	// 3. Получаем настройки компании
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetMonthAvailability: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings()
		uc.logger.Info("GetMonthAvailability: using default settings")
	}

	loc := settings.Location()
	monthStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// 4. Получаем все активные бронирования месяца одним запросом
	filter := domain.BookingsFilter{
		StartDate:       &monthStart,
		EndDate:         &monthEnd,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// Группируем бронирования по календарной дате
	byDate := make(map[string][]*domain.Booking, len(bookings))
	for _, b := range bookings {
		key := b.BookingDate.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], b)
	}

	// 5. Прогоняем дневной алгоритм по каждой дате месяца
	now := uc.timeProvider.Now()
	nowInLoc := now.In(loc)
	today := time.Date(nowInLoc.Year(), nowInLoc.Month(), nowInLoc.Day(), 0, 0, 0, 0, loc)

	days := make(map[string]bool, monthEnd.Day())
	for d := monthStart; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateFormat)

		// Прошедшие дни недоступны независимо от расписания
		if d.Before(today) {
			days[key] = false
			continue
		}

		day := settings.BusinessHours.ForWeekday(d.Weekday())
		free, err := engine.HasFreeSlot(day, settings.SlotGranularityMinutes, req.TotalDurationMinutes, byDate[key])
		if err != nil {
			uc.logger.Error("GetMonthAvailability: failed to check date %s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to check date %s: %v", ErrInternal, key, err)
		}
		days[key] = free
	}

	// 6. Кешируем результат
	uc.cache.SetMonth(ctx, req.Year, req.Month, req.TotalDurationMinutes, days)

	uc.logger.Info("GetMonthAvailability: built %d days for %04d-%02d", len(days), req.Year, req.Month)

	return &Response{Year: req.Year, Month: req.Month, Days: days}, nil
}
