package consts

// Loan types
const (
	StandardLoanType     = "Standard"
	InterestFreeLoanType = "Interest-Free"
)

// Loan statuses
const (
	LoanStatusPendingApproval = "Pending Approval"
	LoanStatusOngoing         = "Ongoing"
	LoanStatusEnded           = "Ended"
	LoanStatusCancelled       = "Cancelled"
)

// Deposit types mirror the two investment balances a member holds.
const (
	PermanentDepositType = "Permanent"
	TemporaryDepositType = "Temporary"
)

// Deposit sources
const (
	DepositSourceCash          = "cash"
	DepositSourceExcessPayment = "excess-loan-payment"
)

// Reasons stamped on the point transactions the loan flow writes.
const (
	PointsReasonLoanApproval = "standard-loan-approval"
	PointsReasonLoanInterest = "standard-loan-interest"
)

// Loan event names published to the transaction stream and used to pick
// notification patterns.
const (
	LoanInitiatedEvent      = "LoanInitiated"
	LoanApprovedEvent       = "LoanApproved"
	LoanCancelledEvent      = "LoanCancelled"
	LoanPaymentEvent        = "LoanPayment"
	LoanEndedEvent          = "LoanEnded"
	DepositRecordedEvent    = "DepositRecorded"
	WithdrawalRecordedEvent = "WithdrawalRecorded"
	PointsAwardedEvent      = "PointsAwarded"
	PointsRedeemedEvent     = "PointsRedeemed"
	PointsTransferredEvent  = "PointsTransferred"
	PointsReversedEvent     = "PointsReversed"
)

// Formats used in notification templates
const (
	FloatTwoDecimalFormat = "%.2f"
	DateFormat            = "02 Jan 2006"
)

var SensitiveKeys = []string{"Authorization", "X-Api-Key", "Cookie"}
