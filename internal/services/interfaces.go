package services

import (
	"time"

	"gorm.io/gorm"

	"fintrack/internal/finance"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/progress"
)

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate     *time.Time
	ToDate       *time.Time
	Category     *string
	ExpensesOnly bool
}

// TransactionServicer defines the contract for ledger business logic.
type TransactionServicer interface {
	CreateTransaction(description string, amount int64, category string, date time.Time, notes string) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(id string) (*models.Transaction, error)
	DeleteTransaction(id string) error
	TotalBalance() (int64, error)
	SpentInPeriod(category string, period models.BudgetPeriod, now time.Time) (int64, error)
	TransactionsSince(cutoff time.Time) ([]models.Transaction, error)
}

// BudgetStatus pairs a budget with its progress for the current period.
type BudgetStatus struct {
	Budget   models.Budget           `json:"budget"`
	Spent    int64                   `json:"spent"`
	Progress progress.BudgetProgress `json:"progress"`
}

// BudgetServicer defines the contract for budget business logic.
type BudgetServicer interface {
	CreateBudget(category string, amount int64, period models.BudgetPeriod) (*models.Budget, error)
	GetBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(id string) (*models.Budget, error)
	UpdateBudget(id string, amount *int64, period *models.BudgetPeriod) (*models.Budget, error)
	DeleteBudget(id string) error
	GetBudgetStatus(id string) (*BudgetStatus, error)
}

// GoalStatus pairs a goal with its progress.
type GoalStatus struct {
	Goal     models.Goal           `json:"goal"`
	Progress progress.GoalProgress `json:"progress"`
}

// GoalServicer defines the contract for savings goal business logic.
type GoalServicer interface {
	CreateGoal(name string, targetAmount int64, targetDate *time.Time) (*models.Goal, error)
	GetGoals(page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(id string) (*models.Goal, error)
	UpdateGoal(id string, name string, targetAmount *int64, targetDate *time.Time) (*models.Goal, error)
	Contribute(id string, amount int64) (*models.Goal, error)
	DeleteGoal(id string) error
	GetGoalStatus(id string) (*GoalStatus, error)
}

// DebtStatus pairs a debt with its repayment progress.
type DebtStatus struct {
	Debt     models.Debt           `json:"debt"`
	Progress progress.DebtProgress `json:"progress"`
}

// DebtServicer defines the contract for debt business logic.
type DebtServicer interface {
	CreateDebt(name string, debtType models.DebtType, originalAmount int64, interestRate float64, tenureMonths int, monthlyPayment *int64) (*models.Debt, error)
	GetDebts(page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error)
	GetDebtByID(id string) (*models.Debt, error)
	RecordPayment(id string, amount int64) (*models.Debt, error)
	GetDebtStatus(id string) (*DebtStatus, error)
	GetAmortizationSchedule(id string) ([]finance.Installment, error)
	DeleteDebt(id string) error
}

// RecurringServicer defines the contract for recurring transaction logic.
type RecurringServicer interface {
	CreateRecurring(description string, amount int64, category string, frequency models.Frequency, startDate time.Time, endDate *time.Time) (*models.RecurringTransaction, error)
	GetRecurring(page pagination.PageRequest) (*pagination.PageResponse[models.RecurringTransaction], error)
	GetRecurringByID(id string) (*models.RecurringTransaction, error)
	SetActive(id string, active bool) (*models.RecurringTransaction, error)
	DeleteRecurring(id string) error
	ProcessDue(asOf time.Time) (int, error)
}

// NotificationServicer defines the contract for the capped notification log.
type NotificationServicer interface {
	Append(tx *gorm.DB, notification *models.Notification) error
	GetNotifications(page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	MarkRead(id string) error
	MarkAllRead() error
	DeleteNotification(id string) error
	UnreadCount() (int64, error)
}

// SettingsServicer defines the contract for notification settings.
type SettingsServicer interface {
	GetSettings() (*models.NotificationSettings, error)
	UpdateSettings(updates map[string]interface{}) (*models.NotificationSettings, error)
}

// AlertServicer runs the notification rule engine against current state.
type AlertServicer interface {
	Evaluate() ([]models.Notification, error)
}
