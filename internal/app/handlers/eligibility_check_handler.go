package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/services"
)

type EligibilityCheckHandler struct {
	service services.EligibilityServiceInterface
}

func NewEligibilityCheckHandler(service services.EligibilityServiceInterface) *EligibilityCheckHandler {
	return &EligibilityCheckHandler{service: service}
}

func (h *EligibilityCheckHandler) EligibilityCheck(c *gin.Context) {
	var body models.EligibilityCheckRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.service.EligibilityCheck(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
