package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/unitledger"
)

func TestFreeLoanEligibility(t *testing.T) {
	start := date(2024, 1, 1)
	// 100,000 held for 60 days projects to 6,000,000 units.
	balance := unitledger.Balance{Amount: 100_000, Units: 0, UnitsDate: start}
	asOf := start.AddDate(0, 0, 60)

	e := FreeLoanEligibility(balance, 500_000, 6, asOf)
	assert.InDelta(t, 6_000_000, e.CurrentTempUnits, 1e-9)
	assert.Equal(t, 12, e.LoanPeriodLimit)
	assert.InDelta(t, 1_000_000, e.LoanLimit, 1e-9)
}

func ongoingFreeLoan() models.Loan {
	return models.Loan{
		Type:          consts.InterestFreeLoanType,
		Status:        consts.LoanStatusOngoing,
		Amount:        100_000,
		Duration:      6,
		PrincipalLeft: 100_000,
		Date:          date(2024, 1, 1),
	}
}

func TestApplyFreeLoanPaymentPartial(t *testing.T) {
	cfg := testConfig()
	ln := ongoingFreeLoan()

	payment := models.LoanPayment{Date: ln.Date.AddDate(0, 0, 50), Amount: 40_000}
	res, err := ApplyFreeLoanPayment(cfg, ln, payment, 0)
	require.NoError(t, err)

	assert.False(t, res.Closes)
	assert.InDelta(t, 50*100_000, res.Loan.Units, 1e-9)
	assert.InDelta(t, 60_000, res.Loan.PrincipalLeft, 1e-9)
	assert.InDelta(t, 0, res.CashInterest, 1e-9)
}

func TestApplyFreeLoanPaymentOverrunAbsorbedInUnits(t *testing.T) {
	cfg := testConfig()
	ln := ongoingFreeLoan()

	// Day 200 payoff: the loan consumed 20,000,000 units against a
	// 600,000 unit reserve.
	payment := models.LoanPayment{Date: ln.Date.AddDate(0, 0, 200), Amount: 100_000}
	res, err := ApplyFreeLoanPayment(cfg, ln, payment, 25_000_000)
	require.NoError(t, err)

	assert.True(t, res.Closes)
	assert.InDelta(t, 20_000_000, res.CurrentLoanUnits, 1e-9)
	assert.InDelta(t, 19_400_000, res.ExcessUnits, 1e-9)
	assert.InDelta(t, 19_400_000, res.UnitsConsumed, 1e-9)
	assert.InDelta(t, 0, res.CashInterest, 1e-9)
	assert.Equal(t, consts.LoanStatusEnded, res.Loan.Status)
}

func TestApplyFreeLoanPaymentOverrunConvertsToCashInterest(t *testing.T) {
	cfg := testConfig()
	ln := ongoingFreeLoan()

	payment := models.LoanPayment{Date: ln.Date.AddDate(0, 0, 200), Amount: 120_000}
	res, err := ApplyFreeLoanPayment(cfg, ln, payment, 400_000)
	require.NoError(t, err)

	assert.InDelta(t, 19_400_000, res.ExcessUnits, 1e-9)
	assert.InDelta(t, 400_000, res.UnitsConsumed, 1e-9)
	assert.InDelta(t, 19_000_000, res.CashUnits, 1e-9)
	// 19,000,000 / 30 * 0.02
	assert.InDelta(t, 12_666.67, res.CashInterest, 1e-9)
	assert.True(t, res.Closes)
	assert.InDelta(t, 120_000-100_000-12_666.67, res.ExcessAmount, 1e-9)
}

func TestApplyFreeLoanPaymentCashInterestShortfallKeepsLoanOpen(t *testing.T) {
	cfg := testConfig()
	ln := ongoingFreeLoan()

	payment := models.LoanPayment{Date: ln.Date.AddDate(0, 0, 200), Amount: 105_000}
	res, err := ApplyFreeLoanPayment(cfg, ln, payment, 400_000)
	require.NoError(t, err)

	assert.False(t, res.Closes)
	// Interest settles first, the remainder reduces principal.
	assert.InDelta(t, 0, res.Loan.InterestAmount, 1e-9)
	assert.InDelta(t, 100_000-(105_000-12_666.67), res.Loan.PrincipalLeft, 1e-9)
	assert.InDelta(t, 0, res.UnitsConsumed, 1e-9)
	assert.Equal(t, consts.LoanStatusOngoing, res.Loan.Status)
}

func TestApplyFreeLoanPaymentRejectsEndedLoan(t *testing.T) {
	cfg := testConfig()
	ln := ongoingFreeLoan()
	ln.Status = consts.LoanStatusEnded

	_, err := ApplyFreeLoanPayment(cfg, ln, models.LoanPayment{Date: time.Now(), Amount: 1}, 0)
	assert.ErrorIs(t, err, consts.ErrorLoanNotOngoing)
}

func TestFreeCollateralUnits(t *testing.T) {
	assert.InDelta(t, 600_000, FreeCollateralUnits(100_000, 6), 1e-9)
}
