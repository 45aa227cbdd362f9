package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/schedule"
)

// transactionService handles ledger business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction appends a transaction to the ledger. Amounts are signed
// cents; a zero amount is rejected at this boundary so rule evaluation can
// stay total.
func (s *transactionService) CreateTransaction(description string, amount int64, category string, date time.Time, notes string) (*models.Transaction, error) {
	if amount == 0 {
		return nil, apperrors.ErrZeroAmount
	}

	txn := &models.Transaction{
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Notes:       notes,
	}

	if err := s.db.Create(txn).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return txn, nil
}

// GetTransactions returns a paginated list of transactions with optional filters.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.ExpensesOnly {
		base = base.Where("amount < 0")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a transaction by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.Where("id = ?", id).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &txn, nil
}

// DeleteTransaction removes a transaction from the ledger.
func (s *transactionService) DeleteTransaction(id string) error {
	txn, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(txn).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// TotalBalance sums all ledger amounts.
func (s *transactionService) TotalBalance() (int64, error) {
	var balance int64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return balance, nil
}

// SpentInPeriod sums expenses for a category within the calendar window
// containing now, returned as positive cents. Windows are calendar-aligned
// (current week/month/year), not rolling.
func (s *transactionService) SpentInPeriod(category string, period models.BudgetPeriod, now time.Time) (int64, error) {
	start, end := schedule.PeriodWindow(now, period)

	var spent int64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(-amount), 0)").
		Where("category = ? AND amount < 0 AND date BETWEEN ? AND ?", category, start, end).
		Scan(&spent).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spent, nil
}

// TransactionsSince returns all transactions dated at or after cutoff, most
// recent first. Used to feed trailing-window rules.
func (s *transactionService) TransactionsSince(cutoff time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("date >= ?", cutoff).Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
