package models

import "time"

// Goal represents a savings goal. CurrentAmount only grows through
// contributions; Completed is derived from CurrentAmount >= TargetAmount.
// Milestone notification state lives in the latch table, not on the goal.
type Goal struct {
	Base
	Name          string     `gorm:"not null" json:"name"`
	TargetAmount  int64      `gorm:"type:bigint;not null" json:"target_amount"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	CurrentAmount int64      `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	Completed     bool       `gorm:"default:false" json:"completed"`
}
