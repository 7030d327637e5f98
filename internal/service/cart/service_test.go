package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CleaningService/internal/integrations/analytics"
	"github.com/m04kA/SMC-CleaningService/internal/service/cart/models"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
)

type fakeCatalog struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalog) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
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

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(producer *fakeProducer) *Service {
	catalog := &fakeCatalog{services: map[int64]*domain.Service{
		1: {
			ID:              1,
			Name:            "Мытье окон",
			PricingType:     domain.PricingFixedItem,
			BasePrice:       25,
			DurationMinutes: 30,
			Active:          true,
		},
		2: {
			ID:              2,
			Name:            "Генеральная уборка",
			PricingType:     domain.PricingAreaBased,
			DurationMinutes: 120,
			Active:          true,
			AreaBased: &domain.AreaBasedConfig{
				PricePerUnit: 0.20,
				MinimumPrice: 100,
				Presets:      []domain.AreaPreset{{Name: "Medium", Sqft: 900, Price: 180}},
			},
		},
		3: {
			ID:              3,
			Name:            "Архивная услуга",
			PricingType:     domain.PricingFixedItem,
			BasePrice:       10,
			DurationMinutes: 15,
			Active:          false,
		},
	}}
	return NewService(catalog, producer, nopLogger{})
}

func TestAddItem_CalculatesPriceAndTotals(t *testing.T) {
	producer := &fakeProducer{}
	svc := newTestService(producer)
	ctx := context.Background()

	resp, err := svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 1, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 75.0, resp.Items[0].CalculatedPrice)
	assert.Equal(t, 90, resp.Items[0].DurationMinutes)
	assert.Equal(t, 75.0, resp.TotalPrice)
	assert.Equal(t, 90, resp.TotalDurationMinutes)

	require.Len(t, producer.events, 1)
	assert.Equal(t, analytics.EventCartItemAdded, producer.events[0].eventType)
	assert.Equal(t, "sess-1", producer.events[0].sessionID)
}

func TestAddItem_DuplicateReplacesSelection(t *testing.T) {
	producer := &fakeProducer{}
	svc := newTestService(producer)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 1, Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 1, Quantity: 5})
	require.NoError(t, err)

	// Замена, а не дубль: одна строка с новым количеством
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, 125.0, resp.TotalPrice)

	// Событие уходит только при первом добавлении
	assert.Len(t, producer.events, 1)
}

func TestAddItem_ServiceNotFoundOrInactive(t *testing.T) {
	svc := newTestService(&fakeProducer{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 99, Quantity: 1})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 3, Quantity: 1})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestAddItem_InvalidInput(t *testing.T) {
	svc := newTestService(&fakeProducer{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 1, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// area_based без пресета и площади
	_, err = svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 2, Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestUpdateQuantity_RescalesProportionally(t *testing.T) {
	svc := newTestService(&fakeProducer{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 1, Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.UpdateQuantity(ctx, "sess-1", 1, 3)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, 75.0, resp.Items[0].CalculatedPrice)
	assert.Equal(t, 90, resp.Items[0].DurationMinutes)
}

func TestUpdateQuantity_Errors(t *testing.T) {
	svc := newTestService(&fakeProducer{})
	ctx := context.Background()

	_, err := svc.UpdateQuantity(ctx, "sess-1", 1, 2)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 1, Quantity: 2})
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, "sess-1", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateQuantity(ctx, "sess-1", 99, 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	producer := &fakeProducer{}
	svc := newTestService(producer)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 2, Quantity: 1, Selection: domain.Selection{
		AreaPresetName: ptr.Ptr("Medium"),
	}})
	require.NoError(t, err)

	resp, err := svc.RemoveItem(ctx, "sess-1", 1)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(2), resp.Items[0].ServiceID)
	assert.Equal(t, 180.0, resp.TotalPrice)

	require.Len(t, producer.events, 3)
	assert.Equal(t, analytics.EventCartItemRemoved, producer.events[2].eventType)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	producer := &fakeProducer{}
	svc := newTestService(producer)

	resp, err := svc.RemoveItem(context.Background(), "sess-1", 42)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Empty(t, producer.events)
}

func TestGet_UnknownSessionIsEmptyCart(t *testing.T) {
	svc := newTestService(&fakeProducer{})

	resp := svc.Get(context.Background(), "sess-unknown")
	assert.Equal(t, "sess-unknown", resp.SessionID)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0.0, resp.TotalPrice)
}

func TestClear(t *testing.T) {
	svc := newTestService(&fakeProducer{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", &models.AddItemRequest{ServiceID: 1, Quantity: 1})
	require.NoError(t, err)

	svc.Clear(ctx, "sess-1")

	resp := svc.Get(ctx, "sess-1")
	assert.Empty(t, resp.Items)
}

func TestCarts_AreIsolatedBySession(t *testing.T) {
	svc := newTestService(&fakeProducer{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-a", &models.AddItemRequest{ServiceID: 1, Quantity: 1})
	require.NoError(t, err)

	resp := svc.Get(ctx, "sess-b")
	assert.Empty(t, resp.Items)
}
