package loan

// MultiplierRules bound the standard-loan limit multiplier. A member
// whose recent interest burden is heavy relative to savings is throttled
// toward MinMultiplier; a light burden earns MaxMultiplier.
type MultiplierRules struct {
	MinMultiplier    float64
	MaxMultiplier    float64
	MinInterestRatio float64
	MaxInterestRatio float64
}

// Config is the immutable rule set every engine computation receives.
// The values come from configuration; nothing in this package reads
// ambient state.
type Config struct {
	MonthlyLendingRate        float64
	GracePeriodDays           int
	OneYearMonthThreshold     int
	PointsValuePerUnit        float64
	LoanMultiple              float64
	MinExcessDepositThreshold float64
	Multiplier                MultiplierRules
}
