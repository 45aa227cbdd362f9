package models

// NotificationSettings is a single-row table of per-feature switches and
// thresholds. Missing fields on older persisted rows merge with defaults
// rather than failing (see SettingsService).
type NotificationSettings struct {
	Base
	BillReminders         bool    `gorm:"default:true" json:"bill_reminders"`
	BudgetAlerts          bool    `gorm:"default:true" json:"budget_alerts"`
	GoalUpdates           bool    `gorm:"default:true" json:"goal_updates"`
	LowBalanceWarnings    bool    `gorm:"default:true" json:"low_balance_warnings"`
	UnusualSpendingAlerts bool    `gorm:"default:true" json:"unusual_spending_alerts"`
	SoundEnabled          bool    `gorm:"default:false" json:"sound_enabled"`
	Currency              string  `gorm:"default:USD" json:"currency"`
	BudgetWarningPct      float64 `json:"budget_warning_pct"`
	BudgetCriticalPct     float64 `json:"budget_critical_pct"`
	LowBalanceThreshold   int64   `gorm:"type:bigint" json:"low_balance_threshold"`
	GoalMilestones        []int   `gorm:"serializer:json" json:"goal_milestones"`
}

// Default settings values. Thresholds are percentages; amounts are cents.
const (
	DefaultBudgetWarningPct    = 80.0
	DefaultBudgetCriticalPct   = 95.0
	DefaultLowBalanceThreshold = 50000 // 500 currency units
)

// DefaultGoalMilestones returns the standard milestone percentages.
func DefaultGoalMilestones() []int {
	return []int{25, 50, 75, 100}
}

// DefaultNotificationSettings returns a fully populated settings record.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		BillReminders:         true,
		BudgetAlerts:          true,
		GoalUpdates:           true,
		LowBalanceWarnings:    true,
		UnusualSpendingAlerts: true,
		SoundEnabled:          false,
		Currency:              "USD",
		BudgetWarningPct:      DefaultBudgetWarningPct,
		BudgetCriticalPct:     DefaultBudgetCriticalPct,
		LowBalanceThreshold:   DefaultLowBalanceThreshold,
		GoalMilestones:        DefaultGoalMilestones(),
	}
}

// ApplyDefaults fills zero-valued threshold fields with defaults. Rows
// written by older versions of the schema may be missing them entirely.
func (s *NotificationSettings) ApplyDefaults() {
	if s.BudgetWarningPct == 0 {
		s.BudgetWarningPct = DefaultBudgetWarningPct
	}
	if s.BudgetCriticalPct == 0 {
		s.BudgetCriticalPct = DefaultBudgetCriticalPct
	}
	if s.LowBalanceThreshold == 0 {
		s.LowBalanceThreshold = DefaultLowBalanceThreshold
	}
	if len(s.GoalMilestones) == 0 {
		s.GoalMilestones = DefaultGoalMilestones()
	}
	if s.Currency == "" {
		s.Currency = "USD"
	}
}
