package models

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget represents a spending limit for a category. At most one active
// budget may exist per category.
type Budget struct {
	Base
	Category string       `gorm:"not null;index" json:"category"`
	Amount   int64        `gorm:"type:bigint;not null" json:"amount"`
	Period   BudgetPeriod `gorm:"not null" json:"period"`
}
