package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// SettingsHandler handles notification settings requests.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents a partial settings update. Pointer fields
// distinguish "leave unchanged" from explicit false/zero.
type UpdateSettingsRequest struct {
	BillReminders         *bool    `json:"bill_reminders"`
	BudgetAlerts          *bool    `json:"budget_alerts"`
	GoalUpdates           *bool    `json:"goal_updates"`
	LowBalanceWarnings    *bool    `json:"low_balance_warnings"`
	UnusualSpendingAlerts *bool    `json:"unusual_spending_alerts"`
	SoundEnabled          *bool    `json:"sound_enabled"`
	Currency              *string  `json:"currency" binding:"omitempty,iso4217"`
	BudgetWarningPct      *float64 `json:"budget_warning_pct" binding:"omitempty,gt=0,lte=100"`
	BudgetCriticalPct     *float64 `json:"budget_critical_pct" binding:"omitempty,gt=0,lte=200"`
	LowBalanceThreshold   *int64   `json:"low_balance_threshold" binding:"omitempty,gte=0"`
	GoalMilestones        []int    `json:"goal_milestones" binding:"omitempty,milestones"`
}

// GetSettings returns the current settings, creating defaults on first use.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings applies a partial update.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates := make(map[string]interface{})
	if req.BillReminders != nil {
		updates["bill_reminders"] = *req.BillReminders
	}
	if req.BudgetAlerts != nil {
		updates["budget_alerts"] = *req.BudgetAlerts
	}
	if req.GoalUpdates != nil {
		updates["goal_updates"] = *req.GoalUpdates
	}
	if req.LowBalanceWarnings != nil {
		updates["low_balance_warnings"] = *req.LowBalanceWarnings
	}
	if req.UnusualSpendingAlerts != nil {
		updates["unusual_spending_alerts"] = *req.UnusualSpendingAlerts
	}
	if req.SoundEnabled != nil {
		updates["sound_enabled"] = *req.SoundEnabled
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.BudgetWarningPct != nil {
		updates["budget_warning_pct"] = *req.BudgetWarningPct
	}
	if req.BudgetCriticalPct != nil {
		updates["budget_critical_pct"] = *req.BudgetCriticalPct
	}
	if req.LowBalanceThreshold != nil {
		updates["low_balance_threshold"] = *req.LowBalanceThreshold
	}
	if req.GoalMilestones != nil {
		updates["goal_milestones"] = req.GoalMilestones
	}

	settings, err := h.settingsService.UpdateSettings(updates)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
