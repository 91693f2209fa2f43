package datemath

import (
	"math"
	"time"
)

// OneMonthDays is the fixed month length the club bills on. Interest
// months and unit accrual both count against a 30 day month.
const OneMonthDays = 30

// monthRoundingCutoff is the fraction of a month below which an
// incomplete month is dropped when counting point months.
const monthRoundingCutoff = 0.24

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysDifference returns the whole calendar days from a to b, ignoring
// time of day. Spans where b is not after a return zero.
func DaysDifference(a, b time.Time) int {
	days := int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// TotalMonthsDue counts the whole 30 day months between start and end.
// A remainder of up to graceDays is absorbed so a payment a few days
// into the next month is not billed an extra month; one day past the
// grace period bills the month in full.
func TotalMonthsDue(start, end time.Time, graceDays int) int {
	days := DaysDifference(start, end)
	if days == 0 {
		return 0
	}
	months := days / OneMonthDays
	if days%OneMonthDays > graceDays {
		months++
	}
	return months
}

// MonthsElapsed converts the span to months, rounding the fractional
// remainder down below the 0.24 cutoff and up from it.
func MonthsElapsed(start, end time.Time) int {
	raw := float64(DaysDifference(start, end)) / float64(OneMonthDays)
	whole := math.Floor(raw)
	if raw-whole < monthRoundingCutoff {
		return int(whole)
	}
	return int(whole) + 1
}

// PointMonthsAccrued counts the months of a loan's life on which points
// accrue. Within every 12 month cycle the first monthThreshold months
// are skipped, so points only accrue on the later months of each year.
func PointMonthsAccrued(loanStart, asOf time.Time, monthThreshold int) int {
	remaining := MonthsElapsed(loanStart, asOf)
	accrued := 0
	for remaining > 0 {
		cycle := remaining
		if cycle > 12 {
			cycle = 12
		}
		if cycle > monthThreshold {
			accrued += cycle - monthThreshold
		}
		remaining -= cycle
	}
	return accrued
}
