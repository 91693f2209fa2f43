package loan

import (
	"math"
	"time"

	"growthspring/club_lending/internal/pkg/datemath"
)

// LimitMultiplier interpolates linearly between the rule bounds, keyed
// by the member's interest-paid-to-savings ratio. Heavy recent interest
// relative to savings pulls the multiplier toward its minimum; the
// ratio is clipped to the rule range, and no savings always yields the
// minimum.
func LimitMultiplier(rules MultiplierRules, interestPaid12, currentSavings float64) float64 {
	if currentSavings <= 0 {
		return rules.MinMultiplier
	}

	ratio := interestPaid12 / currentSavings
	if ratio < rules.MinInterestRatio {
		ratio = rules.MinInterestRatio
	}
	if ratio > rules.MaxInterestRatio {
		ratio = rules.MaxInterestRatio
	}

	span := rules.MaxInterestRatio - rules.MinInterestRatio
	if span <= 0 {
		return rules.MinMultiplier
	}
	t := (ratio - rules.MinInterestRatio) / span
	return rules.MaxMultiplier - t*(rules.MaxMultiplier-rules.MinMultiplier)
}

// StandardLoanLimit is the most a member may borrow on a standard loan:
// savings scaled by the risk multiplier, less what is already out on
// ongoing standard loans.
func StandardLoanLimit(cfg Config, currentSavings, interestPaid12, ongoingStandardPrincipal float64) float64 {
	return currentSavings*LimitMultiplier(cfg.Multiplier, interestPaid12, currentSavings) - ongoingStandardPrincipal
}

// InterestAccruedInWindow is the compounding interest a standard loan
// accrued between windowStart and asOf - the delta inside the window,
// not lifetime interest. Accrual stops at loanEnd for ended loans; pass
// the zero time for loans still running.
func InterestAccruedInWindow(cfg Config, principal float64, loanStart, loanEnd, windowStart, asOf time.Time) float64 {
	accruedAt := func(t time.Time) float64 {
		if !loanEnd.IsZero() && t.After(loanEnd) {
			t = loanEnd
		}
		months := datemath.TotalMonthsDue(loanStart, t, cfg.GracePeriodDays)
		return principal * (math.Pow(1+cfg.MonthlyLendingRate, float64(months)) - 1)
	}

	delta := accruedAt(asOf) - accruedAt(windowStart)
	if delta < 0 {
		return 0
	}
	return delta
}
