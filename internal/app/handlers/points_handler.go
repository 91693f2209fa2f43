package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/services"
)

type PointsHandler struct {
	service services.PointsServiceInterface
}

func NewPointsHandler(service services.PointsServiceInterface) *PointsHandler {
	return &PointsHandler{service: service}
}

func (h *PointsHandler) AwardPoints(c *gin.Context) {
	var body models.AwardPointsRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.service.AwardPoints(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transactionId": txn.ID.Hex(),
		"type":          txn.Type,
		"points":        txn.Points,
	})
}

func (h *PointsHandler) RedeemPoints(c *gin.Context) {
	var body models.RedeemPointsRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.service.RedeemPoints(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transactionId": txn.ID.Hex(),
		"type":          txn.Type,
		"points":        txn.Points,
	})
}

func (h *PointsHandler) TransferPoints(c *gin.Context) {
	var body models.TransferPointsRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.service.TransferPoints(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transactionId": txn.ID.Hex(),
		"type":          txn.Type,
		"points":        txn.Points,
	})
}

func (h *PointsHandler) UpdateTransaction(c *gin.Context) {
	transactionID := c.Param("TransactionId")

	var body models.UpdatePointTransactionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.service.UpdateTransaction(c.Request.Context(), transactionID, body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactionId": txn.ID.Hex(),
		"type":          txn.Type,
		"points":        txn.Points,
		"reason":        txn.Reason,
	})
}

func (h *PointsHandler) DeleteTransaction(c *gin.Context) {
	transactionID := c.Param("TransactionId")

	if err := h.service.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
