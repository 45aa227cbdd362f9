package models

import "time"

// Transaction represents a single ledger entry. Amounts are stored as signed
// cents: positive for income, negative for expenses.
type Transaction struct {
	Base
	Description string    `gorm:"not null" json:"description"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Category    string    `gorm:"not null;index" json:"category"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Notes       string    `json:"notes,omitempty"`
}

// IsExpense reports whether the transaction is an outflow.
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}
