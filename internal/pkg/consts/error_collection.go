package consts

import "growthspring/club_lending/internal/pkg/models"

var (
	ErrorMemberNotFound = &models.CustomError{
		Code:    "GS_LENDING_VALIDATION_MEMBER_NOT_FOUND",
		Message: "Member not found",
	}
	ErrorLoanNotFound = &models.CustomError{
		Code:    "GS_LENDING_VALIDATION_LOAN_NOT_FOUND",
		Message: "Loan not found",
	}
	ErrorAmountFormatValidationFailed = &models.CustomError{
		Code:    "GS_LENDING_VALIDATION_AMOUNT_FORMAT_INVALID",
		Message: "Amount must be a positive number",
	}
	ErrorDurationFormatValidationFailed = &models.CustomError{
		Code:    "GS_LENDING_VALIDATION_DURATION_FORMAT_INVALID",
		Message: "Duration in months must be a positive whole number",
	}
	ErrorUnknownLoanType = &models.CustomError{
		Code:    "GS_LENDING_VALIDATION_LOAN_TYPE_UNKNOWN",
		Message: "Loan type must be Standard or Interest-Free",
	}
	ErrorUnknownDepositType = &models.CustomError{
		Code:    "GS_LENDING_VALIDATION_DEPOSIT_TYPE_UNKNOWN",
		Message: "Deposit type must be Permanent or Temporary",
	}
	ErrorPointsNotPositive = &models.CustomError{
		Code:    "GS_LENDING_VALIDATION_POINTS_NOT_POSITIVE",
		Message: "Points must be greater than zero",
	}
	ErrorPointTransactionNotFound = &models.CustomError{
		Code:    "GS_LENDING_VALIDATION_POINT_TRANSACTION_NOT_FOUND",
		Message: "Point transaction not found",
	}

	ErrorStandardLoanLimitExceeded = &models.CustomError{
		Code:    "GS_LENDING_LIMIT_STANDARD_LOAN_LIMIT_EXCEEDED",
		Message: "Requested amount exceeds the member's standard loan limit",
	}
	ErrorFreeLoanAmountLimitExceeded = &models.CustomError{
		Code:    "GS_LENDING_LIMIT_FREE_LOAN_AMOUNT_EXCEEDED",
		Message: "Requested amount exceeds the temporary-savings loan limit",
	}
	ErrorFreeLoanPeriodLimitExceeded = &models.CustomError{
		Code:    "GS_LENDING_LIMIT_FREE_LOAN_PERIOD_EXCEEDED",
		Message: "Requested duration exceeds the temporary-savings period limit",
	}

	ErrorLoanNotPendingApproval = &models.CustomError{
		Code:    "GS_LENDING_STATE_LOAN_NOT_PENDING_APPROVAL",
		Message: "Loan is not awaiting approval",
	}
	ErrorLoanNotOngoing = &models.CustomError{
		Code:    "GS_LENDING_STATE_LOAN_NOT_ONGOING",
		Message: "Loan is not ongoing",
	}
	ErrorPaymentInProgress = &models.CustomError{
		Code:    "GS_LENDING_STATE_PAYMENT_IN_PROGRESS",
		Message: "Another payment on this loan is being processed",
	}
	ErrorStaleSnapshot = &models.CustomError{
		Code:    "GS_LENDING_STATE_STALE_SNAPSHOT",
		Message: "Entity was modified by another request",
	}

	ErrorInsufficientCashLocationFunds = &models.CustomError{
		Code:    "GS_LENDING_FUNDS_CASH_LOCATION_INSUFFICIENT",
		Message: "Cash location balance is below the requested amount",
	}
	ErrorInsufficientPoints = &models.CustomError{
		Code:    "GS_LENDING_FUNDS_POINTS_INSUFFICIENT",
		Message: "Member points balance is below the requested amount",
	}
	ErrorInsufficientWithdrawable = &models.CustomError{
		Code:    "GS_LENDING_FUNDS_WITHDRAWABLE_INSUFFICIENT",
		Message: "Withdrawal amount exceeds the member's balance",
	}
)
