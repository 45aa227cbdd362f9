package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// DebtHandler handles debt requests.
type DebtHandler struct {
	debtService services.DebtServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// CreateDebtRequest represents the request payload for creating a debt.
// MonthlyPayment is optional; when omitted it is derived from the EMI
// formula if a tenure is given.
type CreateDebtRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	Type           models.DebtType `json:"type" binding:"required,debt_type"`
	OriginalAmount int64           `json:"original_amount" binding:"required,gt=0"`
	InterestRate   float64         `json:"interest_rate" binding:"gte=0"`
	TenureMonths   int             `json:"tenure_months" binding:"gte=0,lte=480"`
	MonthlyPayment *int64          `json:"monthly_payment" binding:"omitempty,gte=0"`
}

// PaymentRequest represents the request payload for recording a payment.
type PaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// CreateDebt creates a new debt.
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.CreateDebt(req.Name, req.Type, req.OriginalAmount, req.InterestRate, req.TenureMonths, req.MonthlyPayment)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// GetDebts lists debts.
func (h *DebtHandler) GetDebts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.debtService.GetDebts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebtByID returns a single debt.
func (h *DebtHandler) GetDebtByID(c *gin.Context) {
	debt, err := h.debtService.GetDebtByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// GetDebtStatus returns the debt with repayment progress.
func (h *DebtHandler) GetDebtStatus(c *gin.Context) {
	status, err := h.debtService.GetDebtStatus(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetAmortizationSchedule returns the month-by-month payment plan.
func (h *DebtHandler) GetAmortizationSchedule(c *gin.Context) {
	schedule, err := h.debtService.GetAmortizationSchedule(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// RecordPayment applies a payment toward a debt.
func (h *DebtHandler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.RecordPayment(c.Param("id"), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt removes a debt.
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	if err := h.debtService.DeleteDebt(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted"})
}
