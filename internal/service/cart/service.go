package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CleaningService/internal/integrations/analytics"
	"github.com/m04kA/SMC-CleaningService/internal/pricing"
	"github.com/m04kA/SMC-CleaningService/internal/service/cart/models"
)

// item строка корзины с данными для пересчета
type item struct {
	serviceID      int64
	serviceName    string
	pricingType    domain.PricingType
	quantity       int
	selection      domain.Selection
	price          float64
	breakdown      domain.PriceBreakdown
	unitDuration   int // длительность услуги на единицу количества
	displayMinimum *float64
}

// sessionCart корзина одной сессии
// Строки ключуются по id услуги: одна запись на услугу,
// повторное добавление заменяет выбор, а не дублирует строку
type sessionCart struct {
	items map[int64]*item
	order []int64 // порядок добавления для стабильного вывода
}

// Service явное сессионное хранилище корзин
// Передается по ссылке в обработчики оформления заказа;
// мутации возвращают новое состояние корзины
type Service struct {
	mu    sync.RWMutex
	carts map[string]*sessionCart

	catalogRepo CatalogRepository
	producer    AnalyticsProducer
	logger      Logger
}

// NewService создает сервис корзин
func NewService(catalogRepo CatalogRepository, producer AnalyticsProducer, logger Logger) *Service {
	return &Service{
		carts:       make(map[string]*sessionCart),
		catalogRepo: catalogRepo,
		producer:    producer,
		logger:      logger,
	}
}

// AddItem добавляет услугу в корзину или заменяет её выбор
//
// Повторное добавление той же услуги - замена, а не дубль (осознанное
// поведение, закреплено тестами). Аналитическое событие уходит только
// при первом добавлении, не при замене
func (s *Service) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, req.Quantity)
	}

	svc, err := s.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("AddItem: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("AddItem: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.Active {
		s.logger.Warn("AddItem: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	quote, err := pricing.Calculate(svc, req.Selection, req.Quantity)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidSelection) || errors.Is(err, pricing.ErrInvalidQuantity) {
			s.logger.Warn("AddItem: invalid selection for service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
		}
		s.logger.Error("AddItem: pricing failed for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.mu.Lock()
	cart := s.cartLocked(sessionID)
	_, replaced := cart.items[req.ServiceID]

	cart.items[req.ServiceID] = &item{
		serviceID:      req.ServiceID,
		serviceName:    svc.Name,
		pricingType:    svc.PricingType,
		quantity:       req.Quantity,
		selection:      req.Selection,
		price:          quote.Price,
		breakdown:      quote.Breakdown,
		unitDuration:   svc.DurationMinutes,
		displayMinimum: quote.DisplayMinimum,
	}
	if !replaced {
		cart.order = append(cart.order, req.ServiceID)
	}
	resp := s.responseLocked(sessionID, cart)
	s.mu.Unlock()

	if replaced {
		s.logger.Info("AddItem: session=%s replaced service id=%d", sessionID, req.ServiceID)
	} else {
		s.logger.Info("AddItem: session=%s added service id=%d", sessionID, req.ServiceID)
		s.producer.Emit(analytics.EventCartItemAdded, sessionID, analytics.CartItemPayload{
			ServiceID:   req.ServiceID,
			ServiceName: svc.Name,
			Quantity:    req.Quantity,
			Price:       quote.Price,
		})
	}

	return resp, nil
}

// UpdateQuantity меняет количество строки с пропорциональным пересчетом цены:
// новая цена = цена / старое количество x новое количество
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, serviceID int64, quantity int) (*models.CartResponse, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrItemNotFound
	}
	it, ok := cart.items[serviceID]
	if !ok {
		return nil, ErrItemNotFound
	}

	newPrice, err := pricing.RescaleByQuantity(it.price, it.quantity, quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	}

	// Детализацию пересчитываем тем же коэффициентом, что и цену
	factor := float64(quantity) / float64(it.quantity)
	it.breakdown = domain.PriceBreakdown{
		Subtotal:   round2(it.breakdown.Subtotal * factor),
		Discount:   round2(it.breakdown.Discount * factor),
		FinalPrice: newPrice,
	}
	it.price = newPrice
	it.quantity = quantity

	s.logger.Info("UpdateQuantity: session=%s service id=%d quantity=%d", sessionID, serviceID, quantity)
	return s.responseLocked(sessionID, cart), nil
}

// RemoveItem удаляет строку корзины; отсутствующая строка - no-op
func (s *Service) RemoveItem(ctx context.Context, sessionID string, serviceID int64) (*models.CartResponse, error) {
	s.mu.Lock()
	cart := s.cartLocked(sessionID)

	it, existed := cart.items[serviceID]
	if existed {
		delete(cart.items, serviceID)
		for i, id := range cart.order {
			if id == serviceID {
				cart.order = append(cart.order[:i], cart.order[i+1:]...)
				break
			}
		}
	}
	resp := s.responseLocked(sessionID, cart)
	s.mu.Unlock()

	if existed {
		s.logger.Info("RemoveItem: session=%s removed service id=%d", sessionID, serviceID)
		s.producer.Emit(analytics.EventCartItemRemoved, sessionID, analytics.CartItemPayload{
			ServiceID:   serviceID,
			ServiceName: it.serviceName,
			Quantity:    it.quantity,
			Price:       it.price,
		})
	}

	return resp, nil
}

// Get возвращает корзину сессии с производными суммами
func (s *Service) Get(ctx context.Context, sessionID string) *models.CartResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return &models.CartResponse{SessionID: sessionID, Items: []models.ItemResponse{}}
	}
	return s.responseLocked(sessionID, cart)
}

// Clear очищает корзину сессии
// Вызывается после успешного оформления бронирования
func (s *Service) Clear(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	s.logger.Info("Clear: session=%s cart cleared", sessionID)
}

// cartLocked возвращает корзину сессии, создавая её при необходимости
// Вызывается только под мьютексом
func (s *Service) cartLocked(sessionID string) *sessionCart {
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &sessionCart{items: make(map[int64]*item)}
		s.carts[sessionID] = cart
	}
	return cart
}

// responseLocked собирает ответ с производными суммами
// totalPrice = сумма цен строк, totalDuration = сумма длительность x количество
func (s *Service) responseLocked(sessionID string, cart *sessionCart) *models.CartResponse {
	resp := &models.CartResponse{
		SessionID: sessionID,
		Items:     make([]models.ItemResponse, 0, len(cart.order)),
	}

	for _, id := range cart.order {
		it, ok := cart.items[id]
		if !ok {
			continue
		}
		resp.Items = append(resp.Items, models.ItemResponse{
			ServiceID:       it.serviceID,
			ServiceName:     it.serviceName,
			PricingType:     string(it.pricingType),
			Quantity:        it.quantity,
			Selection:       it.selection,
			CalculatedPrice: it.price,
			Breakdown:       it.breakdown,
			DurationMinutes: it.unitDuration * it.quantity,
			DisplayMinimum:  it.displayMinimum,
		})
		resp.TotalPrice = round2(resp.TotalPrice + it.price)
		resp.TotalDurationMinutes += it.unitDuration * it.quantity
	}

	return resp
}

// round2 округляет до 2 знаков (валюта)
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
