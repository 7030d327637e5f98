package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lib/pq"

	engine "github.com/m04kA/SMC-CleaningService/internal/availability"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CleaningService/internal/integrations/analytics"
	"github.com/m04kA/SMC-CleaningService/internal/pricing"
)

// UseCase use case создания бронирования
// Цены никогда не берутся из запроса клиента: каждая позиция
// пересчитывается калькулятором по текущему каталогу
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	cache        AvailabilityCache
	producer     AnalyticsProducer
	cart         CartStore
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	producer AnalyticsProducer,
	cart CartStore,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		cache:        cache,
		producer:     producer,
		cart:         cart,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// pricedItem позиция с серверной ценой, готовая к сохранению
type pricedItem struct {
	item  ItemRequest
	svc   *domain.Service
	quote *pricing.Quote
}

// Execute выполняет use case создания бронирования
// Слот перепроверяется в сериализуемой транзакции с блокировкой строк:
// при конкурентной записи на один интервал выигрывает ровно один запрос,
// второй получает ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, items=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки компании (дефолтные, если строка еще не создана)
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings()
		uc.logger.Info("CreateBooking: using default settings")
	}
	loc := settings.Location()

	// 4. Валидация даты и времени заблаговременности
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays, loc); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req.Date, req.StartTime, now, settings.MinBookingNoticeMinutes, loc); err != nil {
		uc.logger.Warn("CreateBooking: notice validation failed: %v", err)
		return nil, err
	}

	// 5. Пересчитываем каждую позицию на сервере
	priced, totalPrice, totalDuration, err := uc.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// 6. Минимальная сумма заказа
	if totalPrice < settings.MinBookingValue {
		uc.logger.Warn("CreateBooking: total %.2f below minimum %.2f", totalPrice, settings.MinBookingValue)
		return nil, fmt.Errorf("%w: total %.2f, minimum %.2f",
			ErrBelowMinimumValue, totalPrice, settings.MinBookingValue)
	}

	// 7. Интервал должен помещаться в рабочие часы дня недели
	day := settings.BusinessHours.ForWeekday(req.Date.Weekday())
	if err := validateWithinHours(day, req.StartTime, totalDuration, settings.SlotGranularityMinutes); err != nil {
		uc.logger.Warn("CreateBooking: business hours validation failed: %v", err)
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(totalDuration)
	if err != nil {
		uc.logger.Warn("CreateBooking: end time out of range: %v", err)
		return nil, ErrOutsideBusinessHours
	}

	var result *domain.Booking

	// 8. Перепроверяем слот и сохраняем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные бронирования даты с блокировкой строк (FOR UPDATE)
		filter := domain.BookingsFilter{
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.List(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.2. Проверяем пересечения тем же движком, что и просмотр доступности
		free, err := engine.IsIntervalFree(req.StartTime, totalDuration, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check interval: %v", err)
			return fmt.Errorf("%w: failed to check interval: %v", ErrInternal, err)
		}
		if !free {
			uc.logger.Warn("CreateBooking: slot %s (%d min) already taken", req.StartTime, totalDuration)
			return ErrSlotNotAvailable
		}

		// 8.3. Собираем бронирование с денормализацией данных услуг
		booking := &domain.Booking{
			CustomerName:         req.CustomerName,
			CustomerEmail:        req.CustomerEmail,
			CustomerPhone:        req.CustomerPhone,
			Address:              req.Address,
			BookingDate:          req.Date,
			StartTime:            req.StartTime,
			EndTime:              endTime,
			TotalDurationMinutes: totalDuration,
			TotalPrice:           totalPrice,
			Status:               domain.StatusPending,
			Notes:                req.Notes,
		}
		for _, p := range priced {
			booking.Items = append(booking.Items, domain.BookingItem{
				ServiceID:       p.svc.ID,
				ServiceName:     p.svc.Name,
				PricingType:     p.svc.PricingType,
				Quantity:        p.item.Quantity,
				Selection:       p.item.Selection,
				CalculatedPrice: p.quote.Price,
				Breakdown:       p.quote.Breakdown,
			})
		}

		// 8.4. Атомарно сохраняем бронирование с позициями
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Снапшот сериализуемой транзакции берется до конкурентного INSERT,
		// поэтому проигравший запрос падает на commit с serialization_failure.
		// Для клиента это тот же занятый слот - 409, а не 500
		if isSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: slot %s (%d min) lost concurrent write: %v",
				req.StartTime, totalDuration, err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	// 9. Сбрасываем кеш доступности даты
	uc.cache.InvalidateDate(ctx, result.BookingDate)

	// 10. Отправляем аналитическое событие (fire-and-forget)
	uc.producer.Emit(analytics.EventBookingCreated, req.SessionID, analytics.BookingPayload{
		BookingID:       result.ID,
		BookingDate:     result.BookingDate.Format(domain.DateFormat),
		StartTime:       result.StartTime.String(),
		TotalPrice:      result.TotalPrice,
		DurationMinutes: result.TotalDurationMinutes,
		ItemCount:       len(result.Items),
	})

	// 11. Очищаем корзину сессии
	if req.SessionID != "" {
		uc.cart.Clear(ctx, req.SessionID)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return toResponse(result), nil
}

// pgSerializationFailure код ошибки Postgres serialization_failure (SQLSTATE 40001)
const pgSerializationFailure = pq.ErrorCode("40001")

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgSerializationFailure
}

// priceItems пересчитывает позиции и возвращает итоговую цену и длительность
func (uc *UseCase) priceItems(ctx context.Context, items []ItemRequest) ([]pricedItem, float64, int, error) {
	priced := make([]pricedItem, 0, len(items))
	var totalPrice float64
	var totalDuration int

	for _, item := range items {
		svc, err := uc.catalogRepo.GetByID(ctx, item.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", item.ServiceID)
				return nil, 0, 0, fmt.Errorf("%w: id=%d", ErrServiceNotFound, item.ServiceID)
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", item.ServiceID, err)
			return nil, 0, 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !svc.Active {
			uc.logger.Warn("CreateBooking: service id=%d is inactive", item.ServiceID)
			return nil, 0, 0, fmt.Errorf("%w: id=%d", ErrServiceNotFound, item.ServiceID)
		}

		quote, err := pricing.Calculate(svc, item.Selection, item.Quantity)
		if err != nil {
			uc.logger.Warn("CreateBooking: pricing failed for service id=%d: %v", item.ServiceID, err)
			switch {
			case errors.Is(err, pricing.ErrInvalidQuantity):
				return nil, 0, 0, fmt.Errorf("%w: service id=%d", ErrInvalidQuantity, item.ServiceID)
			case errors.Is(err, pricing.ErrInvalidSelection):
				return nil, 0, 0, fmt.Errorf("%w: service id=%d", ErrInvalidSelection, item.ServiceID)
			default:
				return nil, 0, 0, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
			}
		}

		priced = append(priced, pricedItem{item: item, svc: svc, quote: quote})
		totalPrice = math.Round((totalPrice+quote.Price)*100) / 100
		totalDuration += quote.DurationMinutes
	}

	return priced, totalPrice, totalDuration, nil
}

func toResponse(b *domain.Booking) *Response {
	items := make([]ItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, ItemResponse{
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			PricingType:     string(item.PricingType),
			Quantity:        item.Quantity,
			CalculatedPrice: item.CalculatedPrice,
			Breakdown:       item.Breakdown,
		})
	}
	return &Response{
		ID:                   b.ID,
		CustomerName:         b.CustomerName,
		BookingDate:          b.BookingDate,
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		TotalDurationMinutes: b.TotalDurationMinutes,
		TotalPrice:           b.TotalPrice,
		Status:               string(b.Status),
		Items:                items,
		CreatedAt:            b.CreatedAt,
	}
}
