package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateUTC(t *testing.T) {
	assert.Equal(t, "2024-01-02", DateUTC(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)))

	// zone-aware inputs resolve to the UTC calendar day
	plus5 := time.FixedZone("UTC+5", 5*3600)
	assert.Equal(t, "2024-01-02", DateUTC(time.Date(2024, 1, 2, 23, 30, 0, 0, plus5)))

	// 02:00 in UTC+5 on Jan 3 is 21:00 UTC on Jan 2
	assert.Equal(t, "2024-01-02", DateUTC(time.Date(2024, 1, 3, 2, 0, 0, 0, plus5)))
}

func TestMondayOfWeekUTC(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday maps to itself", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-01-01"},
		{"midweek", time.Date(2024, 1, 4, 15, 0, 0, 0, time.UTC), "2024-01-01"},
		{"sunday belongs to the week behind it", time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC), "2024-01-01"},
		{"next monday starts a new week", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), "2024-01-08"},
		{"year boundary", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), "2024-12-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MondayOfWeekUTC(tt.in))
		})
	}
}

func TestWeekdayIndexUTC(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndexUTC(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))  // Monday
	assert.Equal(t, 1, WeekdayIndexUTC(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))  // Tuesday
	assert.Equal(t, 6, WeekdayIndexUTC(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)))  // Sunday
	assert.Equal(t, 0, WeekdayIndexUTC(time.Date(2024, 1, 8, 23, 0, 0, 0, time.UTC))) // next Monday
}
