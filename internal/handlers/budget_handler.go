package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	alertService  services.AlertServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, alertService services.AlertServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, alertService: alertService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Category string              `json:"category" binding:"required,min=1,max=100"`
	Amount   int64               `json:"amount" binding:"required,gt=0"`
	Period   models.BudgetPeriod `json:"period" binding:"required,budget_period"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Amount *int64               `json:"amount" binding:"omitempty,gt=0"`
	Period *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
}

// CreateBudget creates a budget for a category.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(req.Category, req.Amount, req.Period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.alertService.Evaluate(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets lists budgets.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.GetBudgets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudgetByID returns a single budget.
func (h *BudgetHandler) GetBudgetByID(c *gin.Context) {
	budget, err := h.budgetService.GetBudgetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgetStatus returns the budget with spending progress for the current
// period window.
func (h *BudgetHandler) GetBudgetStatus(c *gin.Context) {
	status, err := h.budgetService.GetBudgetStatus(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// UpdateBudget updates a budget's limit or period.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Param("id"), req.Amount, req.Period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.alertService.Evaluate(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget removes a budget.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.DeleteBudget(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}
