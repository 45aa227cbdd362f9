package services

import (
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/clock"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/finance"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/progress"
)

// debtService handles debt business logic.
type debtService struct {
	db  *gorm.DB
	clk clock.Clock
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB, clk clock.Clock) DebtServicer {
	return &debtService{db: db, clk: clk}
}

// CreateDebt creates an active debt. When no monthly payment is supplied and
// the tenure is known, the payment is derived with the EMI formula.
func (s *debtService) CreateDebt(name string, debtType models.DebtType, originalAmount int64, interestRate float64, tenureMonths int, monthlyPayment *int64) (*models.Debt, error) {
	if originalAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Original amount must be positive")
	}
	if interestRate < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Interest rate must not be negative")
	}
	if tenureMonths < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Tenure must not be negative")
	}

	var payment int64
	switch {
	case monthlyPayment != nil:
		if *monthlyPayment < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Monthly payment must not be negative")
		}
		payment = *monthlyPayment
	case tenureMonths > 0:
		emi, err := finance.ComputeEMI(originalAmount, interestRate, tenureMonths)
		if err != nil {
			return nil, err
		}
		payment = emi
	}

	debt := &models.Debt{
		Name:            name,
		Type:            debtType,
		OriginalAmount:  originalAmount,
		InterestRate:    interestRate,
		TenureMonths:    tenureMonths,
		MonthlyPayment:  payment,
		RemainingAmount: originalAmount,
		IsActive:        true,
	}

	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetDebts returns a paginated list of debts.
func (s *debtService) GetDebts(page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()

	base := s.db.Model(&models.Debt{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := base.Order("created_at").Scopes(pagination.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID returns a debt by ID.
func (s *debtService) GetDebtByID(id string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Where("id = ?", id).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// RecordPayment applies a payment to a debt. RemainingAmount is clamped at
// zero; the first payment that clears the balance flips IsActive off and
// stamps PaidOffDate, irreversibly.
func (s *debtService) RecordPayment(id string, amount int64) (*models.Debt, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidPayment
	}

	debt, err := s.GetDebtByID(id)
	if err != nil {
		return nil, err
	}
	if !debt.IsActive {
		return nil, apperrors.ErrDebtPaidOff
	}

	debt.TotalPaid += amount
	debt.RemainingAmount = debt.OriginalAmount - debt.TotalPaid
	if debt.RemainingAmount < 0 {
		debt.RemainingAmount = 0
	}

	updates := map[string]interface{}{
		"total_paid":       debt.TotalPaid,
		"remaining_amount": debt.RemainingAmount,
	}
	if debt.RemainingAmount == 0 {
		now := s.clk.Now()
		debt.IsActive = false
		debt.PaidOffDate = &now
		updates["is_active"] = false
		updates["paid_off_date"] = &now
	}

	if err := s.db.Model(debt).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetDebtStatus returns the debt with its repayment progress.
func (s *debtService) GetDebtStatus(id string) (*DebtStatus, error) {
	debt, err := s.GetDebtByID(id)
	if err != nil {
		return nil, err
	}
	return &DebtStatus{
		Debt:     *debt,
		Progress: progress.Debt(*debt),
	}, nil
}

// GetAmortizationSchedule expands the debt's original terms into a
// month-by-month payment plan.
func (s *debtService) GetAmortizationSchedule(id string) ([]finance.Installment, error) {
	debt, err := s.GetDebtByID(id)
	if err != nil {
		return nil, err
	}
	if debt.TenureMonths <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Debt has no tenure to amortize")
	}
	return finance.AmortizationSchedule(debt.OriginalAmount, debt.InterestRate, debt.TenureMonths)
}

// DeleteDebt soft-deletes a debt.
func (s *debtService) DeleteDebt(id string) error {
	debt, err := s.GetDebtByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
