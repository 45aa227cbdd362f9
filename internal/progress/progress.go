// Package progress computes derived financial state from raw entity values.
// Every function here is pure and total: out-of-range percentages (over
// 100%) are valid results, and clamping for display is left to callers.
package progress

import (
	"math"

	"fintrack/internal/models"
)

// BudgetProgress describes spending against a budget's limit for the
// current period window.
type BudgetProgress struct {
	Percentage   float64 `json:"percentage"`
	Remaining    int64   `json:"remaining"`
	IsOverBudget bool    `json:"is_over_budget"`
}

// Budget compares spentInPeriod (positive cents) against the budget limit.
// The percentage is not clamped; remaining goes negative once over budget.
func Budget(b models.Budget, spentInPeriod int64) BudgetProgress {
	var pct float64
	if b.Amount > 0 {
		pct = float64(spentInPeriod) / float64(b.Amount) * 100
	}
	return BudgetProgress{
		Percentage:   pct,
		Remaining:    b.Amount - spentInPeriod,
		IsOverBudget: spentInPeriod > b.Amount,
	}
}

// GoalProgress describes a goal's completion state.
type GoalProgress struct {
	Percentage  float64 `json:"percentage"`
	Remaining   int64   `json:"remaining"`
	IsCompleted bool    `json:"is_completed"`
}

// Goal computes completion against the target amount.
func Goal(g models.Goal) GoalProgress {
	var pct float64
	if g.TargetAmount > 0 {
		pct = float64(g.CurrentAmount) / float64(g.TargetAmount) * 100
	}
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining < 0 {
		remaining = 0
	}
	return GoalProgress{
		Percentage:  pct,
		Remaining:   remaining,
		IsCompleted: g.CurrentAmount >= g.TargetAmount,
	}
}

// DebtProgress describes repayment state of a debt.
type DebtProgress struct {
	PercentagePaid  float64 `json:"percentage_paid"`
	MonthsRemaining int     `json:"months_remaining"`
}

// Debt computes the share of the original amount repaid and a straight-line
// estimate of the months left at the current monthly payment.
func Debt(d models.Debt) DebtProgress {
	var pct float64
	if d.OriginalAmount > 0 {
		pct = float64(d.TotalPaid) / float64(d.OriginalAmount) * 100
	}
	var months int
	if d.RemainingAmount > 0 && d.MonthlyPayment > 0 {
		months = int(math.Ceil(float64(d.RemainingAmount) / float64(d.MonthlyPayment)))
	}
	return DebtProgress{
		PercentagePaid:  pct,
		MonthsRemaining: months,
	}
}
