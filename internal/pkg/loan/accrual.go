package loan

import (
	"math"
	"time"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/datemath"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/points"
)

// Quote prices a standard loan at initiation.
type Quote struct {
	TotalRate         float64
	PointsNeeded      float64
	PointsSpent       float64
	ActualInterest    float64
	InstallmentAmount float64
}

// StandardQuote prices a standard loan. Points buy down the back-loaded
// part of the rate: short loans only need points for the months past the
// first six, long loans need a flat 12% of the amount plus every month
// past eighteen.
func StandardQuote(cfg Config, amount float64, duration int, borrowerPoints float64) Quote {
	totalRate := cfg.MonthlyLendingRate * float64(duration)

	var pointsNeeded float64
	if float64(duration)/12.0 < 1.5 {
		pointsNeeded = math.Max(0, totalRate-6*cfg.MonthlyLendingRate) * amount / cfg.PointsValuePerUnit
	} else {
		pointsNeeded = 0.12*amount/cfg.PointsValuePerUnit +
			float64(duration-18)*cfg.MonthlyLendingRate*amount/cfg.PointsValuePerUnit
	}

	pointsSpent := math.Min(pointsNeeded, borrowerPoints)
	actualInterest := totalRate*amount - points.ToCurrency(pointsSpent, cfg.PointsValuePerUnit)

	return Quote{
		TotalRate:         totalRate,
		PointsNeeded:      pointsNeeded,
		PointsSpent:       pointsSpent,
		ActualInterest:    actualInterest,
		InstallmentAmount: math.Round((amount + actualInterest) / float64(duration)),
	}
}

// TotalInterestDue computes the compounding interest owed on
// principalLeft at dueDate, and the number of months it covers. Months
// already billed up to the last payment are excluded; a loan that has
// never been paid is always billed at least its first month.
func TotalInterestDue(cfg Config, paymentsCount int, principalLeft float64, lastPaymentDate, loanStart, dueDate time.Time) (float64, int) {
	monthsDue := datemath.TotalMonthsDue(loanStart, dueDate, cfg.GracePeriodDays)
	if paymentsCount > 0 {
		monthsDue -= datemath.TotalMonthsDue(loanStart, lastPaymentDate, cfg.GracePeriodDays)
	}
	if monthsDue <= 0 {
		if paymentsCount == 0 {
			monthsDue = 1
		} else {
			monthsDue = 0
		}
	}

	interest := principalLeft * (math.Pow(1+cfg.MonthlyLendingRate, float64(monthsDue)) - 1)
	return roundCents(interest), monthsDue
}

// roundCents keeps billed amounts at cent precision so a payoff for the
// quoted figure actually closes the loan.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// InterestSplit divides interest due between the share payable in
// points and the share that must be paid in cash.
type InterestSplit struct {
	PointsInterestDue float64
	CashInterestDue   float64
	PointsConsumed    float64
}

// SplitInterestDue attributes the point-eligible months' share of the
// interest to points, capped by what the member's balance can cover.
func SplitInterestDue(cfg Config, totalInterestDue float64, monthsDue, pointMonthsDue int, availablePoints float64) InterestSplit {
	var pointsDue float64
	if monthsDue > 0 && pointMonthsDue > 0 {
		pointsDue = totalInterestDue * float64(pointMonthsDue) / float64(monthsDue)
	}
	if cap := points.ToCurrency(availablePoints, cfg.PointsValuePerUnit); pointsDue > cap {
		pointsDue = cap
	}
	return InterestSplit{
		PointsInterestDue: pointsDue,
		CashInterestDue:   totalInterestDue - pointsDue,
		PointsConsumed:    points.FromCurrency(pointsDue, cfg.PointsValuePerUnit),
	}
}

// PaymentSplit is the distribution of one cash payment. The three
// components always sum to the payment amount; a negative principal
// component signals interest that was only partially cleared.
type PaymentSplit struct {
	InterestPaid  float64
	PrincipalPaid float64
	ExcessAmount  float64
}

// StandardPaymentSplit distributes a cash payment across interest due,
// principal, and excess, in that order. A payment short of the interest
// due reports the shortfall as a negative principal component.
func StandardPaymentSplit(paymentAmount, totalInterestDue, principalLeft float64) PaymentSplit {
	if paymentAmount >= principalLeft+totalInterestDue {
		return PaymentSplit{
			InterestPaid:  totalInterestDue,
			PrincipalPaid: principalLeft,
			ExcessAmount:  paymentAmount - principalLeft - totalInterestDue,
		}
	}
	return PaymentSplit{
		InterestPaid:  totalInterestDue,
		PrincipalPaid: paymentAmount - totalInterestDue,
	}
}

// StandardPaymentResult is the full effect of one payment on a standard
// loan snapshot. Loan is the new snapshot; the caller persists it
// together with the point redemption and any excess-deposit draft.
type StandardPaymentResult struct {
	Loan           models.Loan
	MonthsDue      int
	PointMonthsDue int
	InterestBilled float64
	Split          PaymentSplit
	PointsConsumed float64
	ExcessAmount   float64
	Closes         bool
}

// ApplyStandardPayment bills the interest due at the payment date,
// settles the point-eligible share from the member's points, and
// distributes the cash payment. Unpaid interest stays on the loan as
// InterestAmount and rolls into the next billing.
func ApplyStandardPayment(cfg Config, ln models.Loan, payment models.LoanPayment, availablePoints float64) (StandardPaymentResult, error) {
	if ln.Status != consts.LoanStatusOngoing {
		return StandardPaymentResult{}, consts.ErrorLoanNotOngoing
	}

	billed, monthsDue := TotalInterestDue(cfg, len(ln.Payments), ln.PrincipalLeft, ln.LastPaymentDate, ln.Date, payment.Date)

	pointMonths := datemath.PointMonthsAccrued(ln.Date, payment.Date, cfg.OneYearMonthThreshold)
	if len(ln.Payments) > 0 {
		pointMonths -= datemath.PointMonthsAccrued(ln.Date, ln.LastPaymentDate, cfg.OneYearMonthThreshold)
	}
	if pointMonths < 0 {
		pointMonths = 0
	}
	if pointMonths > monthsDue {
		pointMonths = monthsDue
	}

	outstanding := ln.InterestAmount + billed
	split := SplitInterestDue(cfg, outstanding, monthsDue, pointMonths, availablePoints)
	cashSplit := StandardPaymentSplit(payment.Amount, split.CashInterestDue, ln.PrincipalLeft)

	interestLeft := outstanding - split.PointsInterestDue - cashSplit.InterestPaid
	principalLeft := ln.PrincipalLeft
	if cashSplit.PrincipalPaid > 0 {
		principalLeft -= cashSplit.PrincipalPaid
	} else {
		// Whole cash payment went to interest; the shortfall rolls forward.
		interestLeft = outstanding - split.PointsInterestDue - payment.Amount
	}
	if principalLeft < 0 {
		principalLeft = 0
	}
	if interestLeft < 0 {
		interestLeft = 0
	}

	next := ln
	next.Payments = append(append([]models.LoanPayment(nil), ln.Payments...), payment)
	next.PrincipalLeft = principalLeft
	next.InterestAmount = interestLeft
	next.LastPaymentDate = payment.Date
	next.PointsSpent = ln.PointsSpent + split.PointsConsumed

	closes := principalLeft <= 0 && interestLeft <= 0
	if closes {
		next.Status = consts.LoanStatusEnded
		next.Duration = datemath.TotalMonthsDue(ln.Date, payment.Date, cfg.GracePeriodDays)
	}

	return StandardPaymentResult{
		Loan:           next,
		MonthsDue:      monthsDue,
		PointMonthsDue: pointMonths,
		InterestBilled: billed,
		Split:          cashSplit,
		PointsConsumed: split.PointsConsumed,
		ExcessAmount:   cashSplit.ExcessAmount,
		Closes:         closes,
	}, nil
}
