package utils

import "growthspring/club_lending/internal/pkg/models"

func GetErrorCode(err error) string {
	if customErr, ok := err.(*models.CustomError); ok {
		return customErr.ErrorCode()
	}
	if limitErr, ok := err.(*models.LimitError); ok {
		return limitErr.ErrorCode()
	}
	return "GS_LENDING_INTERNAL_ERROR"
}
