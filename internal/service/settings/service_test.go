package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

type fakeRepo struct {
	stored *domain.CompanySettings
}

func (f *fakeRepo) Get(ctx context.Context) (*domain.CompanySettings, error) {
	if f.stored == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.stored, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, s *domain.CompanySettings) (*domain.CompanySettings, error) {
	f.stored = s
	return s, nil
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) InvalidateAll(ctx context.Context) {
	f.invalidations++
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validRequest() *models.SettingsRequest {
	workday := models.DayScheduleDTO{IsOpen: true, Start: "09:00", End: "19:00"}
	return &models.SettingsRequest{
		BusinessHours: models.BusinessHoursDTO{
			Monday:    workday,
			Tuesday:   workday,
			Wednesday: workday,
			Thursday:  workday,
			Friday:    workday,
			Saturday:  models.DayScheduleDTO{IsOpen: false},
			Sunday:    models.DayScheduleDTO{IsOpen: false},
		},
		Timezone:                "Europe/Moscow",
		SlotGranularityMinutes:  30,
		MinBookingValue:         50,
		MinBookingNoticeMinutes: 120,
		AdvanceBookingDays:      30,
	}
}

func TestGet_DefaultsWhenRowMissing(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.SlotGranularityMinutes)
	assert.True(t, resp.BusinessHours.Monday.IsOpen)
	assert.False(t, resp.BusinessHours.Sunday.IsOpen)
}

func TestUpdate_PersistsAndInvalidatesCache(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	svc := NewService(repo, cache, nopLogger{})

	resp, err := svc.Update(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	assert.Equal(t, 30, resp.SlotGranularityMinutes)
	require.NotNil(t, repo.stored)

	// Рабочие часы и гранулярность влияют на все даты
	assert.Equal(t, 1, cache.invalidations)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.BusinessHours.Monday.Start)
}

func TestUpdate_ValidationErrors(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.SettingsRequest)
	}{
		{"granularity too small", func(r *models.SettingsRequest) { r.SlotGranularityMinutes = 10 }},
		{"granularity too big", func(r *models.SettingsRequest) { r.SlotGranularityMinutes = 300 }},
		{"negative min value", func(r *models.SettingsRequest) { r.MinBookingValue = -1 }},
		{"negative notice", func(r *models.SettingsRequest) { r.MinBookingNoticeMinutes = -1 }},
		{"negative horizon", func(r *models.SettingsRequest) { r.AdvanceBookingDays = -1 }},
		{"unknown timezone", func(r *models.SettingsRequest) { r.Timezone = "Mars/Olympus" }},
		{"bad open time", func(r *models.SettingsRequest) { r.BusinessHours.Monday.Start = "9am" }},
		{"open after close", func(r *models.SettingsRequest) {
			r.BusinessHours.Monday.Start = "19:00"
			r.BusinessHours.Monday.End = "09:00"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := svc.Update(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_ClosedDaysSkipHoursValidation(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(&fakeRepo{}, cache, nopLogger{})

	// У закрытого дня часы не проверяются
	req := validRequest()
	req.BusinessHours.Saturday = models.DayScheduleDTO{IsOpen: false, Start: "bad", End: ""}

	_, err := svc.Update(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)
}
