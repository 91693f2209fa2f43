package unitledger

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProjectUnits(t *testing.T) {
	b := Balance{Amount: 1000, Units: 5000, UnitsDate: date(2024, 1, 1)}

	assert.InDelta(t, 5000, ProjectUnits(b, date(2024, 1, 1)), 1e-9)
	assert.InDelta(t, 5000+1000*30, ProjectUnits(b, date(2024, 1, 31)), 1e-9)
	// Projection never runs backwards.
	assert.InDelta(t, 5000, ProjectUnits(b, date(2023, 12, 1)), 1e-9)
}

func TestApplyDelta(t *testing.T) {
	start := date(2024, 1, 1)
	b := Balance{Amount: 1000, Units: 0, UnitsDate: start}

	// Deposit 500 on day 10, valued on day 30: the old balance earns 30
	// days, the delta earns 20.
	next := ApplyDelta(b, 500, start.AddDate(0, 0, 10), start.AddDate(0, 0, 30))
	assert.InDelta(t, 1000*30+500*20, next.Units, 1e-9)
	assert.InDelta(t, 1500, next.Amount, 1e-9)
	assert.Equal(t, start.AddDate(0, 0, 30), next.UnitsDate)
}

func TestApplyDeltaWithdrawal(t *testing.T) {
	start := date(2024, 1, 1)
	b := Balance{Amount: 1000, Units: 0, UnitsDate: start}

	next := ApplyDelta(b, -400, start.AddDate(0, 0, 15), start.AddDate(0, 0, 15))
	assert.InDelta(t, 1000*15, next.Units, 1e-9)
	assert.InDelta(t, 600, next.Amount, 1e-9)
}

// Replay invariance: applying dated deltas one at a time, rebasing at
// each event date, must value the same as replaying the whole history
// against a zeroed ledger.
func TestReplayInvariance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := date(2023, 1, 1)
		n := rapid.IntRange(1, 20).Draw(t, "n")

		offsets := make([]int, n)
		for i := range offsets {
			offsets[i] = rapid.IntRange(0, 1000).Draw(t, "offset")
		}
		sort.Ints(offsets)

		events := make([]Event, n)
		for i := range events {
			amount := rapid.Float64Range(-50_000, 500_000).Draw(t, "amount")
			events[i] = Event{Amount: amount, Date: base.AddDate(0, 0, offsets[i])}
		}
		asOf := base.AddDate(0, 0, 1000+rapid.IntRange(0, 365).Draw(t, "tail"))

		incremental := Balance{UnitsDate: events[0].Date}
		for _, e := range events {
			incremental = ApplyDelta(incremental, e.Amount, e.Date, e.Date)
		}
		replayed := Replay(events, asOf)

		assert.InDelta(t, replayed.Amount, incremental.Amount, 1e-6)
		assert.InDelta(t, replayed.Units, ProjectUnits(incremental, asOf), 1e-6)
	})
}
