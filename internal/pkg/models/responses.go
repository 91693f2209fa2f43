package models

// EligibilityCheckResponse reports the computed limits so a rejected
// caller can show the member how much room is left.
type EligibilityCheckResponse struct {
	MemberId        string   `json:"memberId"`
	Type            string   `json:"type"`
	Eligible        *bool    `json:"eligible,omitempty"`
	LoanLimit       *float64 `json:"loanLimit,omitempty"`
	LoanPeriodLimit *int     `json:"loanPeriodLimit,omitempty"`
	CurrentSavings  *float64 `json:"currentSavings,omitempty"`
	LoanMultiplier  *float64 `json:"loanMultiplier,omitempty"`
	Result          string   `json:"result,omitempty"`
	StatusCode      string   `json:"statusCode,omitempty"`
}

type LoanQuoteResponse struct {
	TotalRate         float64 `json:"totalRate"`
	PointsNeeded      float64 `json:"pointsNeeded"`
	PointsSpent       float64 `json:"pointsSpent"`
	ActualInterest    float64 `json:"actualInterest"`
	InstallmentAmount float64 `json:"installmentAmount"`
}

type PaymentResponse struct {
	LoanId         string  `json:"loanId"`
	Status         string  `json:"status"`
	InterestPaid   float64 `json:"interestPaid"`
	PrincipalPaid  float64 `json:"principalPaid"`
	ExcessAmount   float64 `json:"excessAmount"`
	PointsConsumed float64 `json:"pointsConsumed"`
	PrincipalLeft  float64 `json:"principalLeft"`
	InterestLeft   float64 `json:"interestLeft"`
}
