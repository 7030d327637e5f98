package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CleaningService/internal/service/catalog/models"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
)

type fakeRepo struct {
	services map[int64]*domain.Service
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{services: make(map[int64]*domain.Service)}
}

func (f *fakeRepo) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	f.nextID++
	svc.ID = f.nextID
	f.services[svc.ID] = svc
	return svc, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(f.services))
	for _, svc := range f.services {
		if activeOnly && !svc.Active {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, svc *domain.Service) error {
	if _, ok := f.services[svc.ID]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	svc, ok := f.services[id]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	svc.Active = false
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func fixedItemRequest() *models.ServiceRequest {
	return &models.ServiceRequest{
		Name:            "Мытье окон",
		Description:     "Мытье окон с двух сторон",
		PricingType:     "fixed_item",
		BasePrice:       25.50,
		DurationMinutes: 30,
	}
}

func TestCreate(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	resp, err := svc.Create(context.Background(), fixedItemRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "fixed_item", resp.PricingType)

	// Active по умолчанию true
	assert.True(t, resp.Active)
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.ServiceRequest)
	}{
		{"empty name", func(r *models.ServiceRequest) { r.Name = "" }},
		{"negative price", func(r *models.ServiceRequest) { r.BasePrice = -1 }},
		{"zero duration", func(r *models.ServiceRequest) { r.DurationMinutes = 0 }},
		{"duration too long", func(r *models.ServiceRequest) { r.DurationMinutes = domain.MaxBookingDurationMinutes + 1 }},
		{"unknown pricing type", func(r *models.ServiceRequest) { r.PricingType = "hourly" }},
		{"area_based without config", func(r *models.ServiceRequest) { r.PricingType = "area_based" }},
		{"fixed_item with addons config", func(r *models.ServiceRequest) {
			r.Addons = &domain.AddonsConfig{}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := fixedItemRequest()
			tt.mutate(req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestList_ActiveOnlyHidesDisabled(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, fixedItemRequest())
	require.NoError(t, err)

	inactive := fixedItemRequest()
	inactive.Name = "Архивная услуга"
	inactive.Active = ptr.Ptr(false)
	_, err = svc.Create(ctx, inactive)
	require.NoError(t, err)

	public, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, public.Services, 1)
	assert.Equal(t, created.ID, public.Services[0].ID)

	admin, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, admin.Services, 2)
}

func TestUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, fixedItemRequest())
	require.NoError(t, err)

	req := fixedItemRequest()
	req.BasePrice = 30
	resp, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 30.0, resp.BasePrice)

	_, err = svc.Update(ctx, 99, fixedItemRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDelete_Deactivates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, fixedItemRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	// Услуга остается в базе, но выключена
	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	assert.ErrorIs(t, svc.Delete(ctx, 99), ErrServiceNotFound)
}
