package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "08:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "24:00", "8:30:00", "abc", "12:60"}
	for _, s := range invalid {
		assert.ErrorIs(t, TimeString(s).Validate(), ErrInvalidFormat, s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	min, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, min)

	min, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	_, err = TimeString("25:00").Minutes()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTimeString_AddMinutes(t *testing.T) {
	next, err := TimeString("10:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), next)

	prev, err := TimeString("10:30").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), prev)

	// Полночь следующего дня непредставима как начало слота
	_, err = TimeString("23:00").AddMinutes(60)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = TimeString("23:00").AddMinutes(120)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("18:00"))
	assert.False(t, TimeString("18:00").IsBefore("08:00"))
	assert.False(t, TimeString("08:00").IsBefore("08:00"))

	assert.True(t, TimeString("18:00").IsAfter("08:00"))
	assert.False(t, TimeString("08:00").IsAfter("18:00"))

	// Некорректные значения не проходят ни одно сравнение
	assert.False(t, TimeString("bad").IsBefore("08:00"))
	assert.False(t, TimeString("08:00").IsAfter("bad"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Колонка TIME приходит с секундами
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:15")))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 1, 11, 45, 30, 0, time.UTC)))
	assert.Equal(t, TimeString("11:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("07:45")
	require.NoError(t, err)
	assert.Equal(t, TimeString("07:45"), ts)

	_, err = NewTimeStringFromString("7:45pm")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
