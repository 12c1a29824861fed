package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2026, time.March, 14, 15, 9, 26, 535, time.UTC)
	assert.Equal(t, date(2026, time.March, 14), BeginningOfDay(ts))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(date(2026, time.March, 10), date(2026, time.March, 13)))
	assert.Equal(t, 0, DaysBetween(date(2026, time.March, 10), date(2026, time.March, 10)))
	assert.Equal(t, -2, DaysBetween(date(2026, time.March, 12), date(2026, time.March, 10)))
}

func TestAddBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"within the week", date(2026, time.March, 2), 3, date(2026, time.March, 5)},   // Mon + 3 = Thu
		{"skips weekend", date(2026, time.March, 5), 2, date(2026, time.March, 9)},     // Thu + 2 = Mon
		{"starts on saturday", date(2026, time.March, 7), 1, date(2026, time.March, 9)}, // Sat + 1 = Mon
		{"zero days", date(2026, time.March, 4), 0, date(2026, time.March, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddBusinessDays(tt.start, tt.n))
		})
	}
}

func TestDefaultDeliveryDate(t *testing.T) {
	// Monday at noon: four business days later is Friday
	now := time.Date(2026, time.March, 2, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2026, time.March, 6), DefaultDeliveryDate(now))

	// Wednesday: four business days later crosses the weekend to Tuesday
	now = time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2026, time.March, 10), DefaultDeliveryDate(now))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2026, time.March, 7)))  // Saturday
	assert.True(t, IsWeekend(date(2026, time.March, 8)))  // Sunday
	assert.False(t, IsWeekend(date(2026, time.March, 9))) // Monday
}
