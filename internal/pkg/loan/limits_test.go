package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimitMultiplierClamping(t *testing.T) {
	rules := testConfig().Multiplier

	assert.InDelta(t, rules.MinMultiplier, LimitMultiplier(rules, 100, 0), 1e-9)
	assert.InDelta(t, rules.MinMultiplier, LimitMultiplier(rules, 100, -50), 1e-9)
	// Ratio below the floor earns the full multiplier.
	assert.InDelta(t, rules.MaxMultiplier, LimitMultiplier(rules, 0, 1_000_000), 1e-9)
	// Ratio past the ceiling is pinned at the minimum.
	assert.InDelta(t, rules.MinMultiplier, LimitMultiplier(rules, 500_000, 1_000_000), 1e-9)
	// Midpoint of the ratio range lands midway between the bounds.
	mid := (rules.MinInterestRatio + rules.MaxInterestRatio) / 2
	assert.InDelta(t, (rules.MinMultiplier+rules.MaxMultiplier)/2, LimitMultiplier(rules, mid*1_000_000, 1_000_000), 1e-9)
}

func TestLimitMultiplierMonotonic(t *testing.T) {
	rules := testConfig().Multiplier
	savings := 1_000_000.0

	prev := LimitMultiplier(rules, 0, savings)
	for paid := 0.0; paid <= 300_000; paid += 5_000 {
		m := LimitMultiplier(rules, paid, savings)
		assert.LessOrEqual(t, m, prev+1e-12, "multiplier must not grow with the interest burden")
		prev = m
	}
}

func TestStandardLoanLimit(t *testing.T) {
	cfg := testConfig()

	// Light burden: full multiplier less what is already borrowed.
	limit := StandardLoanLimit(cfg, 1_000_000, 0, 400_000)
	assert.InDelta(t, 3_000_000-400_000, limit, 1e-9)

	// No savings leaves nothing to borrow against.
	limit = StandardLoanLimit(cfg, 0, 0, 0)
	assert.InDelta(t, 0, limit, 1e-9)
}

func TestInterestAccruedInWindow(t *testing.T) {
	cfg := testConfig()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("delta inside the window only", func(t *testing.T) {
		windowStart := start.AddDate(0, 0, 180) // 6 months in
		asOf := start.AddDate(0, 0, 360)        // 12 months in

		got := InterestAccruedInWindow(cfg, 1_000_000, start, time.Time{}, windowStart, asOf)
		want := 1_000_000 * (pow1p02(12) - pow1p02(6))
		assert.InDelta(t, want, got, 1e-6)
	})

	t.Run("ended loan stops accruing at its end", func(t *testing.T) {
		loanEnd := start.AddDate(0, 0, 90)
		windowStart := start.AddDate(0, 0, 180)
		asOf := start.AddDate(0, 0, 360)

		got := InterestAccruedInWindow(cfg, 1_000_000, start, loanEnd, windowStart, asOf)
		assert.InDelta(t, 0, got, 1e-9)
	})

	t.Run("loan started inside the window accrues from zero", func(t *testing.T) {
		windowStart := start.AddDate(0, 0, -30)
		asOf := start.AddDate(0, 0, 90)

		got := InterestAccruedInWindow(cfg, 500_000, start, time.Time{}, windowStart, asOf)
		want := 500_000 * (pow1p02(3) - 1)
		assert.InDelta(t, want, got, 1e-6)
	})
}
