// Package finance provides closed-form loan arithmetic.
package finance

import (
	"math"

	apperrors "fintrack/internal/errors"
)

// ComputeEMI returns the equated monthly installment, in cents, for a loan
// of principalCents at annualRatePct over tenureMonths.
//
// A zero rate degenerates to straight division with no compounding. The
// closed form is stable for tenures up to 480 months.
func ComputeEMI(principalCents int64, annualRatePct float64, tenureMonths int) (int64, error) {
	if principalCents <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Principal must be positive")
	}
	if tenureMonths <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Tenure must be positive")
	}
	if annualRatePct < 0 || math.IsNaN(annualRatePct) || math.IsInf(annualRatePct, 0) {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Interest rate must be a non-negative number")
	}

	if annualRatePct == 0 {
		return int64(math.Round(float64(principalCents) / float64(tenureMonths))), nil
	}

	monthlyRate := annualRatePct / 12 / 100
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := float64(principalCents) * monthlyRate * factor / (factor - 1)
	return int64(math.Round(emi)), nil
}

// Installment is one row of an amortization schedule. All amounts are cents.
type Installment struct {
	Month     int   `json:"month"`
	Payment   int64 `json:"payment"`
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
	Balance   int64 `json:"balance"`
}

// AmortizationSchedule expands a loan into its month-by-month principal and
// interest split. The final installment absorbs rounding drift so the
// balance lands exactly on zero.
func AmortizationSchedule(principalCents int64, annualRatePct float64, tenureMonths int) ([]Installment, error) {
	emi, err := ComputeEMI(principalCents, annualRatePct, tenureMonths)
	if err != nil {
		return nil, err
	}

	monthlyRate := annualRatePct / 12 / 100
	schedule := make([]Installment, 0, tenureMonths)
	balance := principalCents

	for m := 1; m <= tenureMonths && balance > 0; m++ {
		interest := int64(math.Round(float64(balance) * monthlyRate))
		principal := emi - interest
		payment := emi
		if principal >= balance || m == tenureMonths {
			principal = balance
			payment = principal + interest
		}
		balance -= principal
		schedule = append(schedule, Installment{
			Month:     m,
			Payment:   payment,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
	}

	return schedule, nil
}
