package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/clock"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// RecurringHandler handles recurring transaction requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	alertService     services.AlertServicer
	clk              clock.Clock
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer, alertService services.AlertServicer, clk clock.Clock) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService, alertService: alertService, clk: clk}
}

// CreateRecurringRequest represents the request payload for a recurring transaction.
type CreateRecurringRequest struct {
	Description string           `json:"description" binding:"required,min=1,max=200"`
	Amount      int64            `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required,min=1,max=100"`
	Frequency   models.Frequency `json:"frequency" binding:"required,frequency"`
	StartDate   time.Time        `json:"start_date" binding:"required"`
	EndDate     *time.Time       `json:"end_date"`
}

// SetActiveRequest toggles a recurring transaction on or off.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CreateRecurring creates a recurring transaction.
func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rec, err := h.recurringService.CreateRecurring(req.Description, req.Amount, req.Category, req.Frequency, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recurring_transaction": rec})
}

// GetRecurring lists recurring transactions.
func (h *RecurringHandler) GetRecurring(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.recurringService.GetRecurring(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRecurringByID returns a single recurring transaction.
func (h *RecurringHandler) GetRecurringByID(c *gin.Context) {
	rec, err := h.recurringService.GetRecurringByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_transaction": rec})
}

// SetActive pauses or resumes a recurring transaction.
func (h *RecurringHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rec, err := h.recurringService.SetActive(c.Param("id"), *req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_transaction": rec})
}

// ProcessDue materializes every elapsed occurrence of every active
// definition into the ledger, then re-runs rule evaluation. The background
// ticker calls the same services; this endpoint exists for manual catch-up.
func (h *RecurringHandler) ProcessDue(c *gin.Context) {
	count, err := h.recurringService.ProcessDue(h.clk.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.alertService.Evaluate()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"materialized": count, "notifications": notifications})
}

// DeleteRecurring removes a recurring transaction.
func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	if err := h.recurringService.DeleteRecurring(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recurring transaction deleted"})
}
