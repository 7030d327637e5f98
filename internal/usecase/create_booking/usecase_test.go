package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CleaningService/internal/integrations/analytics"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	f.created = b
	return b, nil
}

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeSettingsRepo struct {
	settings *domain.CompanySettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*domain.CompanySettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
// commitErr имитирует ошибку, которую Postgres возвращает на commit
type fakeTxManager struct {
	calls     int
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	if f.commitErr != nil {
		return fmt.Errorf("txmanager: failed to commit transaction: %w", f.commitErr)
	}
	return nil
}

type fakeCache struct {
	invalidated []time.Time
}

func (f *fakeCache) InvalidateDate(ctx context.Context, date time.Time) {
	f.invalidated = append(f.invalidated, date)
}

type recordedEvent struct {
	eventType string
	sessionID string
	payload   interface{}
}

type fakeProducer struct {
	events []recordedEvent
}

func (f *fakeProducer) Emit(eventType, sessionID string, payload interface{}) {
	f.events = append(f.events, recordedEvent{eventType, sessionID, payload})
}

type fakeCart struct {
	cleared []string
}

func (f *fakeCart) Clear(ctx context.Context, sessionID string) {
	f.cleared = append(f.cleared, sessionID)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	settings *fakeSettingsRepo
	tx       *fakeTxManager
	cache    *fakeCache
	producer *fakeProducer
	cart     *fakeCart
}

// Понедельник 09:00 по умолчанию; бронируем на среду той же недели
var (
	testNow  = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
)

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		settings: &fakeSettingsRepo{settings: domain.DefaultSettings()},
		tx:       &fakeTxManager{},
		cache:    &fakeCache{},
		producer: &fakeProducer{},
		cart:     &fakeCart{},
	}

	catalog := &fakeCatalogRepo{services: map[int64]*domain.Service{
		1: {
			ID:              1,
			Name:            "Мытье окон",
			PricingType:     domain.PricingFixedItem,
			BasePrice:       50,
			DurationMinutes: 60,
			Active:          true,
		},
		2: {
			ID:              2,
			Name:            "Архивная услуга",
			PricingType:     domain.PricingFixedItem,
			BasePrice:       10,
			DurationMinutes: 30,
			Active:          false,
		},
	}}

	f.uc = NewUseCase(f.bookings, catalog, f.settings, f.tx, f.cache, f.producer, f.cart, nopLogger{})
	f.uc.timeProvider = &fixedTime{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Иван Петров",
		CustomerEmail: "ivan@example.com",
		CustomerPhone: "+7 900 123-45-67",
		Address:       "Москва, ул. Ленина, 1",
		Date:          testDate,
		StartTime:     types.TimeString("10:00"),
		Items:         []ItemRequest{{ServiceID: 1, Quantity: 2}},
		SessionID:     "sess-1",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.EndTime)
	assert.Equal(t, 120, resp.TotalDurationMinutes)
	assert.Equal(t, 100.0, resp.TotalPrice)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 100.0, resp.Items[0].CalculatedPrice)

	// Слот перепроверен и сохранен в транзакции
	assert.Equal(t, 1, f.tx.calls)

	// Позиции денормализованы для истории
	require.NotNil(t, f.bookings.created)
	assert.Equal(t, "Мытье окон", f.bookings.created.Items[0].ServiceName)

	// Кеш даты сброшен, событие отправлено, корзина очищена
	require.Len(t, f.cache.invalidated, 1)
	assert.Equal(t, testDate, f.cache.invalidated[0])

	require.Len(t, f.producer.events, 1)
	assert.Equal(t, analytics.EventBookingCreated, f.producer.events[0].eventType)
	assert.Equal(t, "sess-1", f.producer.events[0].sessionID)

	assert.Equal(t, []string{"sess-1"}, f.cart.cleared)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{
		{StartTime: "10:00", TotalDurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Nil(t, f.bookings.created)
	assert.Empty(t, f.cache.invalidated)
	assert.Empty(t, f.producer.events)
	assert.Empty(t, f.cart.cleared)
}

func TestExecute_SerializationFailureMapsToSlotNotAvailable(t *testing.T) {
	// Проигравший конкурентную запись получает serialization_failure
	// на commit - клиенту это занятый слот, а не внутренняя ошибка
	f := newFixture()
	f.tx.commitErr = &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Empty(t, f.cache.invalidated)
	assert.Empty(t, f.producer.events)
	assert.Empty(t, f.cart.cleared)
}

func TestExecute_OtherCommitErrorIsNotSlotConflict(t *testing.T) {
	f := newFixture()
	f.tx.commitErr = errors.New("driver: bad connection")

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.cache.invalidated)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{
		{StartTime: "10:00", TotalDurationMinutes: 120, Status: domain.StatusCancelled},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_TouchingBookingDoesNotConflict(t *testing.T) {
	f := newFixture()
	// Существующее бронирование заканчивается ровно в 10:00
	f.bookings.existing = []*domain.Booking{
		{StartTime: "08:00", TotalDurationMinutes: 120, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_BelowMinimumValue(t *testing.T) {
	f := newFixture()
	f.settings.settings.MinBookingValue = 150

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBelowMinimumValue)
}

func TestExecute_TooSoon(t *testing.T) {
	f := newFixture()

	// Бронирование на сегодня 10:00 при now=09:00 и notice 120 минут
	req := validRequest()
	req.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooSoon)
}

func TestExecute_SameDayWithEnoughNotice(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	req.StartTime = types.TimeString("14:00")

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_DateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	past := validRequest()
	past.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(ctx, past)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Горизонт по умолчанию 60 дней
	far := validRequest()
	far.Date = testNow.AddDate(0, 0, 61)
	_, err = f.uc.Execute(ctx, far)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_CompanyClosed(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCompanyClosed)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	early := validRequest()
	early.StartTime = types.TimeString("07:00")
	_, err := f.uc.Execute(ctx, early)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	// 17:00 + 2 часа выходит за закрытие в 18:00
	late := validRequest()
	late.StartTime = types.TimeString("17:00")
	_, err = f.uc.Execute(ctx, late)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_StartTimeNotOnGrid(t *testing.T) {
	f := newFixture()

	// Шаг сетки 60 минут, 10:30 не является кандидатом
	req := validRequest()
	req.StartTime = types.TimeString("10:30")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceNotFoundOrInactive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	missing := validRequest()
	missing.Items = []ItemRequest{{ServiceID: 99, Quantity: 1}}
	_, err := f.uc.Execute(ctx, missing)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	inactive := validRequest()
	inactive.Items = []ItemRequest{{ServiceID: 2, Quantity: 1}}
	_, err = f.uc.Execute(ctx, inactive)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RequestValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"empty name", func(r *Request) { r.CustomerName = "  " }, ErrInvalidInput},
		{"empty email", func(r *Request) { r.CustomerEmail = "" }, ErrInvalidInput},
		{"empty phone", func(r *Request) { r.CustomerPhone = "" }, ErrInvalidInput},
		{"empty address", func(r *Request) { r.Address = "" }, ErrInvalidInput},
		{"bad start time", func(r *Request) { r.StartTime = "25:00" }, ErrInvalidInput},
		{"no items", func(r *Request) { r.Items = nil }, ErrInvalidInput},
		{"zero quantity", func(r *Request) { r.Items[0].Quantity = 0 }, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := f.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_DefaultSettingsWhenRowMissing(t *testing.T) {
	f := newFixture()
	f.settings.settings = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_EmptySessionSkipsCartClear(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.SessionID = ""

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, f.cart.cleared)
}
