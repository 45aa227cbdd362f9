package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction inserts a ledger transaction. Amount is signed cents.
func CreateTestTransaction(t *testing.T, db *gorm.DB, amount int64, category string, date time.Time) *models.Transaction {
	t.Helper()
	txn := &models.Transaction{
		Description: fmt.Sprintf("transaction %d", nextID()),
		Amount:      amount,
		Category:    category,
		Date:        date,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestBudget inserts a monthly budget for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, amount int64) *models.Budget {
	t.Helper()
	budget := &models.Budget{
		Category: category,
		Amount:   amount,
		Period:   models.BudgetPeriodMonthly,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal inserts a goal with the given target, starting at zero.
func CreateTestGoal(t *testing.T, db *gorm.DB, target int64) *models.Goal {
	t.Helper()
	goal := &models.Goal{
		Name:         fmt.Sprintf("goal %d", nextID()),
		TargetAmount: target,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestDebt inserts an active debt with the given principal and payment.
func CreateTestDebt(t *testing.T, db *gorm.DB, original, monthlyPayment int64) *models.Debt {
	t.Helper()
	debt := &models.Debt{
		Name:            fmt.Sprintf("debt %d", nextID()),
		Type:            models.DebtTypeLoan,
		OriginalAmount:  original,
		InterestRate:    12,
		TenureMonths:    12,
		MonthlyPayment:  monthlyPayment,
		RemainingAmount: original,
		IsActive:        true,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestRecurring inserts an active recurring transaction whose NextDate
// equals its StartDate.
func CreateTestRecurring(t *testing.T, db *gorm.DB, amount int64, freq models.Frequency, start time.Time) *models.RecurringTransaction {
	t.Helper()
	rec := &models.RecurringTransaction{
		Description: fmt.Sprintf("recurring %d", nextID()),
		Amount:      amount,
		Category:    "Bills",
		Frequency:   freq,
		StartDate:   start,
		NextDate:    start,
		IsActive:    true,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test recurring transaction: %v", err)
	}
	return rec
}

// CreateTestSettings inserts a settings row with defaults.
func CreateTestSettings(t *testing.T, db *gorm.DB) *models.NotificationSettings {
	t.Helper()
	settings := models.DefaultNotificationSettings()
	if err := db.Create(&settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return &settings
}
