package models

// NotificationType identifies which rule emitted a notification
type NotificationType string

const (
	NotificationBillReminder       NotificationType = "bill_reminder"
	NotificationBudgetWarning      NotificationType = "budget_warning"
	NotificationBudgetCritical     NotificationType = "budget_critical"
	NotificationGoalMilestone      NotificationType = "goal_milestone"
	NotificationGoalCompleted      NotificationType = "goal_completed"
	NotificationLowBalance         NotificationType = "low_balance"
	NotificationLowBalanceCritical NotificationType = "low_balance_critical"
	NotificationUnusualSpending    NotificationType = "unusual_spending"
)

// NotificationPriority represents the urgency of a notification
type NotificationPriority string

const (
	PriorityLow      NotificationPriority = "low"
	PriorityMedium   NotificationPriority = "medium"
	PriorityHigh     NotificationPriority = "high"
	PriorityCritical NotificationPriority = "critical"
)

// Notification is one entry in the capped notification log. The log keeps
// the most recent entries only; the oldest are evicted on append.
type Notification struct {
	Base
	Type     NotificationType     `gorm:"not null" json:"type"`
	Message  string               `gorm:"not null" json:"message"`
	Priority NotificationPriority `gorm:"not null" json:"priority"`
	Read     bool                 `gorm:"default:false" json:"read"`
}
