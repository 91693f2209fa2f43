package unitledger

import (
	"time"

	"growthspring/club_lending/internal/pkg/datemath"
)

// Balance is a day-weighted investment balance. Units measure amount
// multiplied by days held, so two members holding the same amount for
// different lengths of time are valued differently.
type Balance struct {
	Amount    float64
	Units     float64
	UnitsDate time.Time
}

// Event is one dated change to the underlying amount.
type Event struct {
	Amount float64
	Date   time.Time
}

// ProjectUnits values the balance at asOf without mutating it.
func ProjectUnits(b Balance, asOf time.Time) float64 {
	return b.Units + b.Amount*float64(datemath.DaysDifference(b.UnitsDate, asOf))
}

// ApplyDelta folds one dated amount change into the balance and
// rebases UnitsDate to asOf. The existing balance is projected forward
// to asOf and the delta contributes its own day-weighted units from
// eventDate. Call once per discrete event; batching several deltas
// through an averaged date corrupts the ledger.
func ApplyDelta(b Balance, deltaAmount float64, eventDate, asOf time.Time) Balance {
	units := ProjectUnits(b, asOf) +
		deltaAmount*float64(datemath.DaysDifference(eventDate, asOf))
	return Balance{
		Amount:    b.Amount + deltaAmount,
		Units:     units,
		UnitsDate: asOf,
	}
}

// Replay folds a full event history into a zeroed balance, valuing it
// at asOf. Replaying must agree with incremental ApplyDelta calls to
// floating point tolerance.
func Replay(events []Event, asOf time.Time) Balance {
	var b Balance
	if len(events) > 0 {
		b.UnitsDate = events[0].Date
	}
	for _, e := range events {
		b = ApplyDelta(b, e.Amount, e.Date, asOf)
	}
	return b
}
