package models

import "time"

// Frequency represents how often a recurring transaction repeats
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// RecurringTransaction is a template that materializes ledger transactions
// on a schedule. NextDate is always StartDate advanced by whole frequency
// increments; the schedule projector owns that arithmetic.
type RecurringTransaction struct {
	Base
	Description string     `gorm:"not null" json:"description"`
	Amount      int64      `gorm:"type:bigint;not null" json:"amount"`
	Category    string     `gorm:"not null" json:"category"`
	Frequency   Frequency  `gorm:"not null" json:"frequency"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	NextDate    time.Time  `gorm:"not null;index" json:"next_date"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
}
