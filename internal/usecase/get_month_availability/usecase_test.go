package get_month_availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, nil
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

type fakeCache struct {
	months map[string]map[string]bool
	sets   int
}

func monthKey(year, month, duration int) string {
	return fmt.Sprintf("%04d-%02d:%d", year, month, duration)
}

func (f *fakeCache) GetMonth(ctx context.Context, year, month, durationMinutes int) (map[string]bool, bool) {
	days, ok := f.months[monthKey(year, month, durationMinutes)]
	return days, ok
}

func (f *fakeCache) SetMonth(ctx context.Context, year, month, durationMinutes int, days map[string]bool) {
	if f.months == nil {
		f.months = make(map[string]map[string]bool)
	}
	f.months[monthKey(year, month, durationMinutes)] = days
	f.sets++
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

func newTestUseCase(repo *fakeBookingRepo, settings *fakeSettingsRepo, cache *fakeCache, now time.Time) *UseCase {
	uc := NewUseCase(repo, settings, cache, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_MonthView(t *testing.T) {
	// Весь вторник 2026-03-03 занят одним бронированием на 10 часов
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			BookingDate:          time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			StartTime:            "08:00",
			TotalDurationMinutes: 600,
			Status:               domain.StatusConfirmed,
		},
	}}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeSettingsRepo{settings: domain.DefaultSettings()}, &fakeCache{}, now)

	resp, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 3, TotalDurationMinutes: 60})
	require.NoError(t, err)

	assert.Len(t, resp.Days, 31)

	// Прошедший день недоступен независимо от расписания
	assert.False(t, resp.Days["2026-03-01"])

	// Сегодняшний рабочий день свободен
	assert.True(t, resp.Days["2026-03-02"])

	// Полностью занятый день
	assert.False(t, resp.Days["2026-03-03"])

	// Выходные закрыты по расписанию (суббота/воскресенье)
	assert.False(t, resp.Days["2026-03-07"])
	assert.False(t, resp.Days["2026-03-08"])

	// Обычный будний день в будущем
	assert.True(t, resp.Days["2026-03-04"])

	// Месяц загружен одним запросом
	assert.Equal(t, 1, repo.calls)
}

func TestExecute_PartiallyBookedDayStaysAvailable(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			BookingDate:          time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			StartTime:            "10:00",
			TotalDurationMinutes: 120,
			Status:               domain.StatusPending,
		},
	}}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeSettingsRepo{settings: domain.DefaultSettings()}, &fakeCache{}, now)

	resp, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 3, TotalDurationMinutes: 60})
	require.NoError(t, err)
	assert.True(t, resp.Days["2026-03-04"])
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			BookingDate:          time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			StartTime:            "08:00",
			TotalDurationMinutes: 600,
			Status:               domain.StatusCancelled,
		},
	}}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeSettingsRepo{settings: domain.DefaultSettings()}, &fakeCache{}, now)

	resp, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 3, TotalDurationMinutes: 60})
	require.NoError(t, err)
	assert.True(t, resp.Days["2026-03-04"])
}

func TestExecute_CacheHitSkipsRepository(t *testing.T) {
	repo := &fakeBookingRepo{}
	cache := &fakeCache{}
	cache.SetMonth(context.Background(), 2026, 3, 60, map[string]bool{"2026-03-02": true})
	cache.sets = 0

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeSettingsRepo{settings: domain.DefaultSettings()}, cache, now)

	resp, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 3, TotalDurationMinutes: 60})
	require.NoError(t, err)

	assert.True(t, resp.Days["2026-03-02"])
	assert.Equal(t, 0, repo.calls)
	assert.Equal(t, 0, cache.sets)
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{settings: domain.DefaultSettings()}, &fakeCache{}, now)
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
	}{
		{"month too small", Request{Year: 2026, Month: 0, TotalDurationMinutes: 60}},
		{"month too big", Request{Year: 2026, Month: 13, TotalDurationMinutes: 60}},
		{"year out of range", Request{Year: 1999, Month: 3, TotalDurationMinutes: 60}},
		{"zero duration", Request{Year: 2026, Month: 3, TotalDurationMinutes: 0}},
		{"duration too long", Request{Year: 2026, Month: 3, TotalDurationMinutes: domain.MaxBookingDurationMinutes + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
