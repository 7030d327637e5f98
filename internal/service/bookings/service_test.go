package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CleaningService/internal/integrations/analytics"
	"github.com/m04kA/SMC-CleaningService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking

	updatedStatus *domain.BookingStatus
	cancelled     bool
	cancelReason  string
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = &status
	return nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id int64, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelled = true
	f.cancelReason = reason
	return nil
}

type fakeCache struct {
	invalidated []time.Time
}

func (f *fakeCache) InvalidateDate(ctx context.Context, date time.Time) {
	f.invalidated = append(f.invalidated, date)
}

type fakeProducer struct {
	events []string
}

func (f *fakeProducer) Emit(eventType, sessionID string, payload interface{}) {
	f.events = append(f.events, eventType)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var bookingDate = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

func newFixture(status domain.BookingStatus) (*Service, *fakeRepo, *fakeCache, *fakeProducer) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:                   1,
			CustomerName:         "Иван Петров",
			BookingDate:          bookingDate,
			StartTime:            "10:00",
			EndTime:              "12:00",
			TotalDurationMinutes: 120,
			TotalPrice:           100,
			Status:               status,
		},
	}}
	cache := &fakeCache{}
	producer := &fakeProducer{}
	return NewService(repo, cache, producer, nopLogger{}), repo, cache, producer
}

func TestGetByID(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr("done"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestUpdateStatus_AllowedTransition(t *testing.T) {
	svc, repo, cache, _ := newFixture(domain.StatusPending)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)

	// Смена статуса сбрасывает кеш даты
	require.Len(t, cache.invalidated, 1)
	assert.Equal(t, bookingDate, cache.invalidated[0])
}

func TestUpdateStatus_ForbiddenTransition(t *testing.T) {
	svc, repo, cache, _ := newFixture(domain.StatusCompleted)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, repo.updatedStatus)
	assert.Empty(t, cache.invalidated)
}

func TestUpdateStatus_InvalidStatusString(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	_, err := svc.UpdateStatus(context.Background(), 99, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	svc, repo, cache, producer := newFixture(domain.StatusConfirmed)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "клиент передумал"})
	require.NoError(t, err)

	assert.True(t, repo.cancelled)
	assert.Equal(t, "клиент передумал", repo.cancelReason)
	require.Len(t, cache.invalidated, 1)
	assert.Equal(t, []string{analytics.EventBookingCancelled}, producer.events)
}

func TestCancel_TerminalStatus(t *testing.T) {
	svc, repo, _, producer := newFixture(domain.StatusCancelled)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.False(t, repo.cancelled)
	assert.Empty(t, producer.events)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	long := make([]byte, domain.MaxCancellationReason+1)
	for i := range long {
		long[i] = 'a'
	}

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: string(long)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_NotFound(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
