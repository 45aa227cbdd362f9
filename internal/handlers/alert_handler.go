package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// AlertHandler exposes a manual trigger for rule evaluation.
type AlertHandler struct {
	alertService services.AlertServicer
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService services.AlertServicer) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// Evaluate runs all notification rules against current state and returns
// whatever was emitted this cycle.
func (h *AlertHandler) Evaluate(c *gin.Context) {
	notifications, err := h.alertService.Evaluate()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
