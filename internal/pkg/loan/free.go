package loan

import (
	"math"
	"time"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/datemath"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/unitledger"
)

// FreeEligibility bounds an interest-free loan request by the member's
// projected temporary-savings units.
type FreeEligibility struct {
	CurrentTempUnits float64
	LoanPeriodLimit  int
	LoanLimit        float64
}

// FreeLoanEligibility projects the temporary balance to asOf and
// derives the longest period the requested amount can run, and the
// largest amount the requested period can carry.
func FreeLoanEligibility(tempBalance unitledger.Balance, amount float64, period int, asOf time.Time) FreeEligibility {
	units := unitledger.ProjectUnits(tempBalance, asOf)

	e := FreeEligibility{CurrentTempUnits: units}
	if amount > 0 {
		e.LoanPeriodLimit = int(math.Round(units / amount))
	}
	if period > 0 {
		e.LoanLimit = math.Round(units / float64(period))
	}
	return e
}

// FreeCollateralUnits is the unit reserve an approved free loan takes
// from the borrower's temporary balance.
func FreeCollateralUnits(amount float64, duration int) float64 {
	return amount * float64(duration)
}

// FreePaymentResult is the effect of one payment on an interest-free
// loan snapshot. UnitsConsumed is debited from the member's temporary
// balance when the loan's overrun is absorbed in units; CashInterest is
// billed when the balance cannot absorb it.
type FreePaymentResult struct {
	Loan             models.Loan
	CurrentLoanUnits float64
	ExcessUnits      float64
	UnitsConsumed    float64
	CashUnits        float64
	CashInterest     float64
	ExcessAmount     float64
	Closes           bool
}

// ApplyFreeLoanPayment advances the loan's consumed units to the
// payment date and settles the payment. A partial payment just reduces
// principal. A payoff compares the units the loan actually consumed
// with the collateral it reserved: an overrun is absorbed from the
// member's current temporary units when possible, otherwise the
// shortfall converts to cash interest at the monthly rate over a fixed
// 30 day month, payable before the loan can close.
func ApplyFreeLoanPayment(cfg Config, ln models.Loan, payment models.LoanPayment, tempUnitsAvailable float64) (FreePaymentResult, error) {
	if ln.Status != consts.LoanStatusOngoing {
		return FreePaymentResult{}, consts.ErrorLoanNotOngoing
	}

	lastDate := ln.LastPaymentDate
	if lastDate.IsZero() {
		lastDate = ln.Date
	}
	currentLoanUnits := float64(datemath.DaysDifference(lastDate, payment.Date))*ln.PrincipalLeft + ln.Units

	next := ln
	next.Payments = append(append([]models.LoanPayment(nil), ln.Payments...), payment)
	next.LastPaymentDate = payment.Date

	result := FreePaymentResult{CurrentLoanUnits: currentLoanUnits}

	if payment.Amount < ln.PrincipalLeft {
		next.Units = currentLoanUnits
		next.PrincipalLeft = ln.PrincipalLeft - payment.Amount
		result.Loan = next
		return result, nil
	}

	result.ExcessUnits = math.Max(0, currentLoanUnits-FreeCollateralUnits(ln.Amount, ln.Duration))

	if result.ExcessUnits <= tempUnitsAvailable {
		// The member's remaining temporary units absorb the overrun.
		result.UnitsConsumed = result.ExcessUnits
		next.Units = currentLoanUnits
		next.PrincipalLeft = 0
		next.InterestAmount = 0
		next.Status = consts.LoanStatusEnded
		next.Duration = datemath.TotalMonthsDue(ln.Date, payment.Date, cfg.GracePeriodDays)
		result.ExcessAmount = payment.Amount - ln.PrincipalLeft
		result.Closes = true
		result.Loan = next
		return result, nil
	}

	result.UnitsConsumed = tempUnitsAvailable
	result.CashUnits = result.ExcessUnits - tempUnitsAvailable
	result.CashInterest = roundCents(result.CashUnits / float64(datemath.OneMonthDays) * cfg.MonthlyLendingRate)

	required := ln.PrincipalLeft + result.CashInterest
	if payment.Amount >= required {
		next.Units = currentLoanUnits
		next.PrincipalLeft = 0
		next.InterestAmount = 0
		next.Status = consts.LoanStatusEnded
		next.Duration = datemath.TotalMonthsDue(ln.Date, payment.Date, cfg.GracePeriodDays)
		result.ExcessAmount = payment.Amount - required
		result.Closes = true
		result.Loan = next
		return result, nil
	}

	// Not enough to clear both; interest settles first, the remainder
	// reduces principal and the units stay with the loan until payoff.
	interestPaid := math.Min(payment.Amount, result.CashInterest)
	next.Units = currentLoanUnits
	next.InterestAmount = ln.InterestAmount + result.CashInterest - interestPaid
	next.PrincipalLeft = ln.PrincipalLeft - (payment.Amount - interestPaid)
	result.UnitsConsumed = 0
	result.Loan = next
	return result, nil
}
