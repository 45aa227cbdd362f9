package services

import (
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/clock"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/progress"
)

// budgetService handles budget business logic.
type budgetService struct {
	db           *gorm.DB
	transactions TransactionServicer
	clk          clock.Clock
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, transactions TransactionServicer, clk clock.Clock) BudgetServicer {
	return &budgetService{db: db, transactions: transactions, clk: clk}
}

// CreateBudget creates a budget for a category. At most one active budget
// may exist per category.
func (s *budgetService) CreateBudget(category string, amount int64, period models.BudgetPeriod) (*models.Budget, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Budget amount must be positive")
	}

	var count int64
	if err := s.db.Model(&models.Budget{}).Where("category = ?", category).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		Category: category,
		Amount:   amount,
		Period:   period,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetBudgets returns a paginated list of budgets.
func (s *budgetService) GetBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Order("category").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(id string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget's limit or period.
func (s *budgetService) UpdateBudget(id string, amount *int64, period *models.BudgetPeriod) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Budget amount must be positive")
		}
		updates["amount"] = *amount
	}
	if period != nil {
		updates["period"] = *period
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// DeleteBudget soft-deletes a budget, freeing its category for a new one.
func (s *budgetService) DeleteBudget(id string) error {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetStatus computes spending against the budget for the current
// calendar period window.
func (s *budgetService) GetBudgetStatus(id string) (*BudgetStatus, error) {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	spent, err := s.transactions.SpentInPeriod(budget.Category, budget.Period, s.clk.Now())
	if err != nil {
		return nil, err
	}

	return &BudgetStatus{
		Budget:   *budget,
		Spent:    spent,
		Progress: progress.Budget(*budget, spent),
	}, nil
}
