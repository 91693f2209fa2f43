package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/utils"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, consts.ErrorMemberNotFound),
		errors.Is(err, consts.ErrorLoanNotFound),
		errors.Is(err, consts.ErrorPointTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, consts.ErrorAmountFormatValidationFailed),
		errors.Is(err, consts.ErrorDurationFormatValidationFailed),
		errors.Is(err, consts.ErrorUnknownLoanType),
		errors.Is(err, consts.ErrorUnknownDepositType),
		errors.Is(err, consts.ErrorPointsNotPositive):
		return http.StatusBadRequest
	case errors.Is(err, consts.ErrorPaymentInProgress),
		errors.Is(err, consts.ErrorStaleSnapshot),
		errors.Is(err, consts.ErrorLoanNotPendingApproval),
		errors.Is(err, consts.ErrorLoanNotOngoing):
		return http.StatusConflict
	case errors.Is(err, consts.ErrorInsufficientPoints),
		errors.Is(err, consts.ErrorInsufficientWithdrawable),
		errors.Is(err, consts.ErrorInsufficientCashLocationFunds):
		return http.StatusUnprocessableEntity
	}

	var limitErr *models.LimitError
	if errors.As(err, &limitErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	body := gin.H{
		"errorCode": utils.GetErrorCode(err),
		"error":     err.Error(),
	}

	var limitErr *models.LimitError
	if errors.As(err, &limitErr) {
		body["limit"] = limitErr.Limit
	}

	c.JSON(errorStatus(err), body)
}
