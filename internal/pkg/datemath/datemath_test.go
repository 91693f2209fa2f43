package datemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2024, 3, 10), date(2024, 3, 10), 0},
		{"one day", date(2024, 3, 10), date(2024, 3, 11), 1},
		{"time of day ignored", time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC), 1},
		{"reversed clamps to zero", date(2024, 3, 11), date(2024, 3, 10), 0},
		{"across month boundary", date(2024, 1, 15), date(2024, 3, 15), 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysDifference(tt.a, tt.b))
		})
	}
}

func TestTotalMonthsDue(t *testing.T) {
	start := date(2024, 1, 1)
	graceDays := 5

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"end before start", date(2023, 12, 1), 0},
		{"same day", start, 0},
		{"within grace period", start.AddDate(0, 0, 30+graceDays), 1},
		{"one day past grace period", start.AddDate(0, 0, 30+graceDays+1), 2},
		{"exact months", start.AddDate(0, 0, 90), 3},
		{"short overrun absorbed", start.AddDate(0, 0, 63), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalMonthsDue(start, tt.end, graceDays))
		})
	}
}

func TestMonthsElapsed(t *testing.T) {
	start := date(2024, 1, 1)

	// 0.24 of a month is 7.2 days; 7 days rounds down, 8 rounds up.
	assert.Equal(t, 1, MonthsElapsed(start, start.AddDate(0, 0, 37)))
	assert.Equal(t, 2, MonthsElapsed(start, start.AddDate(0, 0, 38)))
	assert.Equal(t, 0, MonthsElapsed(start, start))
	assert.Equal(t, 12, MonthsElapsed(start, start.AddDate(0, 0, 360)))
}

func TestPointMonthsAccrued(t *testing.T) {
	start := date(2023, 1, 1)
	threshold := 6

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{"before threshold nothing accrues", start.AddDate(0, 0, 150), 0},
		{"months past threshold accrue", start.AddDate(0, 0, 300), 4},
		{"full year accrues the later half", start.AddDate(0, 0, 360), 6},
		{"second year restarts the window", start.AddDate(0, 0, 360+90), 6},
		{"two full years", start.AddDate(0, 0, 720), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointMonthsAccrued(start, tt.asOf, threshold))
		})
	}
}
