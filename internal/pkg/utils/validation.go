package utils

import (
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/consts"
)

// IsValidAmount checks that a loan or deposit amount is a positive,
// finite number.
func IsValidAmount(amount float64) (bool, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false, consts.ErrorAmountFormatValidationFailed
	}
	return true, nil
}

// IsValidDuration checks that a loan duration is a positive number of months.
func IsValidDuration(durationMonths int) (bool, error) {
	if durationMonths <= 0 {
		return false, consts.ErrorDurationFormatValidationFailed
	}
	return true, nil
}

func IsValidLoanType(loanType string) (bool, error) {
	switch loanType {
	case consts.StandardLoanType, consts.InterestFreeLoanType:
		return true, nil
	}
	return false, consts.ErrorUnknownLoanType
}

func IsValidDepositType(depositType string) (bool, error) {
	switch depositType {
	case consts.PermanentDepositType, consts.TemporaryDepositType:
		return true, nil
	}
	return false, consts.ErrorUnknownDepositType
}

// ToObjectID parses a hex member or document identifier.
func ToObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, consts.ErrorMemberNotFound
	}
	return oid, nil
}
