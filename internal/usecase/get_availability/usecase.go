package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	engine "github.com/m04kA/SMC-CleaningService/internal/availability"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
)

// UseCase use case дневного представления доступности
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

// Execute выполняет use case получения слотов на день
// Кеш обслуживает только чтение: допустимо короткое устаревание,
// решение о записи бронирования по этим данным не принимается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, duration=%d",
		req.Date.Format(domain.DateFormat), req.TotalDurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки компании (дефолтные, если строка еще не создана)
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailability: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings()
		uc.logger.Info("GetAvailability: using default settings")
	}

	// 4. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays, settings.Location()); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 5. Пробуем кеш
	if cached, ok := uc.cache.GetDaySlots(ctx, req.Date, req.TotalDurationMinutes); ok {
		uc.logger.Info("GetAvailability: cache hit for date=%s, duration=%d",
			req.Date.Format(domain.DateFormat), req.TotalDurationMinutes)
		return toResponse(req.Date, cached), nil
	}

	// 6. Получаем активные бронирования на дату
	filter := domain.BookingsFilter{
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только блокирующие бронирования
	}

	bookings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Строим слоты по рабочим часам дня недели
	day := settings.BusinessHours.ForWeekday(req.Date.Weekday())
	slots, err := engine.BuildDaySlots(day, settings.SlotGranularityMinutes, req.TotalDurationMinutes, bookings)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	// 8. Кешируем результат
	uc.cache.SetDaySlots(ctx, req.Date, req.TotalDurationMinutes, slots)

	uc.logger.Info("GetAvailability: built %d slots for date=%s",
		len(slots), req.Date.Format(domain.DateFormat))

	return toResponse(req.Date, slots), nil
}

func toResponse(date time.Time, slots []engine.Slot) *Response {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, Slot{Time: s.Time, Available: s.Available})
	}
	return &Response{Date: date, Slots: out}
}
