package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/services"
)

type DepositHandler struct {
	service services.DepositServiceInterface
}

func NewDepositHandler(service services.DepositServiceInterface) *DepositHandler {
	return &DepositHandler{service: service}
}

func (h *DepositHandler) RecordDeposit(c *gin.Context) {
	var body models.DepositRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deposit, err := h.service.RecordDeposit(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"depositId": deposit.ID.Hex(),
		"type":      deposit.Type,
		"amount":    deposit.Amount,
		"date":      deposit.Date,
	})
}

func (h *DepositHandler) RecordWithdrawal(c *gin.Context) {
	var body models.WithdrawalRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal, err := h.service.RecordWithdrawal(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"withdrawalId": withdrawal.ID.Hex(),
		"type":         withdrawal.Type,
		"amount":       withdrawal.Amount,
		"date":         withdrawal.Date,
	})
}
