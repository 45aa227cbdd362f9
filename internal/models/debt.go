package models

import "time"

// DebtType represents the kind of liability being tracked
type DebtType string

const (
	DebtTypeLoan       DebtType = "loan"
	DebtTypeMortgage   DebtType = "mortgage"
	DebtTypeCreditCard DebtType = "credit_card"
	DebtTypePersonal   DebtType = "personal"
	DebtTypeOther      DebtType = "other"
)

// Debt represents an amortized liability. RemainingAmount is always
// OriginalAmount minus TotalPaid, clamped at zero. IsActive flips to false
// exactly once, when the debt is fully paid off.
type Debt struct {
	Base
	Name            string     `gorm:"not null" json:"name"`
	Type            DebtType   `gorm:"not null" json:"type"`
	OriginalAmount  int64      `gorm:"type:bigint;not null" json:"original_amount"`
	InterestRate    float64    `gorm:"not null" json:"interest_rate"`
	TenureMonths    int        `gorm:"not null" json:"tenure_months"`
	MonthlyPayment  int64      `gorm:"type:bigint;not null" json:"monthly_payment"`
	RemainingAmount int64      `gorm:"type:bigint;not null" json:"remaining_amount"`
	TotalPaid       int64      `gorm:"type:bigint;not null;default:0" json:"total_paid"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	PaidOffDate     *time.Time `json:"paid_off_date,omitempty"`
}
