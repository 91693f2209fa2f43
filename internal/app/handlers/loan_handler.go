package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/services"
)

type LoanHandler struct {
	service services.LoanServiceInterface
}

func NewLoanHandler(service services.LoanServiceInterface) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) InitiateLoan(c *gin.Context) {
	var body models.InitiateLoanRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ln, quote, err := h.service.InitiateLoan(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"loanId": ln.ID.Hex(),
		"status": ln.Status,
		"quote":  quote,
	})
}

func (h *LoanHandler) ApproveLoan(c *gin.Context) {
	loanID := c.Param("LoanId")

	var body models.ApproveLoanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ln, err := h.service.ApproveLoan(c.Request.Context(), loanID, body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loanId": ln.ID.Hex(),
		"status": ln.Status,
		"date":   ln.Date,
	})
}

func (h *LoanHandler) CancelLoan(c *gin.Context) {
	loanID := c.Param("LoanId")

	var body models.CancelLoanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ln, err := h.service.CancelLoan(c.Request.Context(), loanID, body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loanId": ln.ID.Hex(),
		"status": ln.Status,
	})
}

func (h *LoanHandler) ProcessPayment(c *gin.Context) {
	loanID := c.Param("LoanId")

	var body models.LoanPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.service.ProcessPayment(c.Request.Context(), loanID, body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
