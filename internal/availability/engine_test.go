package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

func workday() domain.DaySchedule {
	return domain.DaySchedule{IsOpen: true, Start: "08:00", End: "18:00"}
}

func booking(start types.TimeString, durationMinutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		StartTime:            start,
		TotalDurationMinutes: durationMinutes,
		Status:               status,
	}
}

func TestBuildDaySlots_EmptyDay(t *testing.T) {
	slots, err := BuildDaySlots(workday(), 60, 60, nil)
	require.NoError(t, err)

	// 08:00..17:00, последний кандидат 17:00-18:00 еще помещается
	require.Len(t, slots, 10)
	assert.Equal(t, types.TimeString("08:00"), slots[0].Time)
	assert.Equal(t, types.TimeString("17:00"), slots[9].Time)
	for _, s := range slots {
		assert.True(t, s.Available, "slot %s", s.Time)
	}
}

func TestBuildDaySlots_BookingMarksSlotUnavailable(t *testing.T) {
	bookings := []*domain.Booking{
		booking("10:00", 60, domain.StatusConfirmed),
	}

	slots, err := BuildDaySlots(workday(), 60, 60, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 10)

	for _, s := range slots {
		if s.Time == "10:00" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available, "slot %s", s.Time)
		}
	}
}

func TestBuildDaySlots_LongDurationExcludesTailCandidates(t *testing.T) {
	// Услуга на 3 часа: кандидаты после 15:00 не существуют вовсе
	slots, err := BuildDaySlots(workday(), 60, 180, nil)
	require.NoError(t, err)

	require.Len(t, slots, 8)
	assert.Equal(t, types.TimeString("15:00"), slots[len(slots)-1].Time)
}

func TestBuildDaySlots_ClosedDay(t *testing.T) {
	slots, err := BuildDaySlots(domain.DaySchedule{IsOpen: false}, 60, 60, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestBuildDaySlots_HalfHourGranularity(t *testing.T) {
	day := domain.DaySchedule{IsOpen: true, Start: "09:00", End: "12:00"}

	slots, err := BuildDaySlots(day, 30, 60, nil)
	require.NoError(t, err)

	// 09:00, 09:30, ..., 11:00 - кандидат 11:30 не помещается до 12:00
	require.Len(t, slots, 5)
	assert.Equal(t, types.TimeString("11:00"), slots[4].Time)
}

func TestBuildDaySlots_PartialOverlapBlocks(t *testing.T) {
	// Бронирование 10:30-11:30 перекрывает кандидатов 10:00 и 11:00
	bookings := []*domain.Booking{
		booking("10:30", 60, domain.StatusPending),
	}

	slots, err := BuildDaySlots(workday(), 60, 60, bookings)
	require.NoError(t, err)

	byTime := make(map[types.TimeString]bool, len(slots))
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	assert.True(t, byTime["09:00"])
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["11:00"])
	assert.True(t, byTime["12:00"])
}

func TestIsIntervalFree_TouchingIntervalsDoNotConflict(t *testing.T) {
	bookings := []*domain.Booking{
		booking("10:00", 60, domain.StatusConfirmed),
	}

	free, err := IsIntervalFree("11:00", 60, bookings)
	require.NoError(t, err)
	assert.True(t, free)

	free, err = IsIntervalFree("09:00", 60, bookings)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsIntervalFree_OverlapConflicts(t *testing.T) {
	bookings := []*domain.Booking{
		booking("11:30", 60, domain.StatusConfirmed),
	}

	free, err := IsIntervalFree("11:00", 60, bookings)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestIsIntervalFree_InactiveBookingsDoNotBlock(t *testing.T) {
	bookings := []*domain.Booking{
		booking("14:00", 60, domain.StatusCancelled),
		booking("14:00", 60, domain.StatusCompleted),
	}

	free, err := IsIntervalFree("14:00", 60, bookings)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestHasFreeSlot(t *testing.T) {
	day := domain.DaySchedule{IsOpen: true, Start: "09:00", End: "11:00"}

	// Оба кандидата заняты одним бронированием на весь интервал
	full := []*domain.Booking{booking("09:00", 120, domain.StatusConfirmed)}
	has, err := HasFreeSlot(day, 60, 60, full)
	require.NoError(t, err)
	assert.False(t, has)

	// Освобождение через отмену
	cancelled := []*domain.Booking{booking("09:00", 120, domain.StatusCancelled)}
	has, err = HasFreeSlot(day, 60, 60, cancelled)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = HasFreeSlot(domain.DaySchedule{IsOpen: false}, 60, 60, nil)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBuildDaySlots_CloseAtMidnight(t *testing.T) {
	day := domain.DaySchedule{IsOpen: true, Start: "22:00", End: "23:59"}

	slots, err := BuildDaySlots(day, 60, 60, nil)
	require.NoError(t, err)

	// 22:00-23:00 помещается, 23:00-24:00 выходит за 23:59
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("22:00"), slots[0].Time)
}
