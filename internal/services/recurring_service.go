package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/schedule"
)

// recurringService handles recurring transaction business logic.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// CreateRecurring creates an active recurring transaction. NextDate starts
// at StartDate; the projector advances it from there.
func (s *recurringService) CreateRecurring(description string, amount int64, category string, frequency models.Frequency, startDate time.Time, endDate *time.Time) (*models.RecurringTransaction, error) {
	if amount == 0 {
		return nil, apperrors.ErrZeroAmount
	}
	switch frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly:
	default:
		return nil, apperrors.ErrInvalidFrequency
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, apperrors.ErrEndBeforeStart
	}

	rec := &models.RecurringTransaction{
		Description: description,
		Amount:      amount,
		Category:    category,
		Frequency:   frequency,
		StartDate:   startDate,
		EndDate:     endDate,
		NextDate:    startDate,
		IsActive:    true,
	}

	if err := s.db.Create(rec).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return rec, nil
}

// GetRecurring returns a paginated list of recurring transactions.
func (s *recurringService) GetRecurring(page pagination.PageRequest) (*pagination.PageResponse[models.RecurringTransaction], error) {
	page.Defaults()

	base := s.db.Model(&models.RecurringTransaction{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var recs []models.RecurringTransaction
	if err := base.Order("next_date").Scopes(pagination.Paginate(page)).Find(&recs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(recs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecurringByID returns a recurring transaction by ID.
func (s *recurringService) GetRecurringByID(id string) (*models.RecurringTransaction, error) {
	var rec models.RecurringTransaction
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rec, nil
}

// SetActive pauses or resumes a recurring transaction.
func (s *recurringService) SetActive(id string, active bool) (*models.RecurringTransaction, error) {
	rec, err := s.GetRecurringByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(rec).Update("is_active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	rec.IsActive = active
	return rec, nil
}

// DeleteRecurring removes a recurring transaction. Transactions it already
// materialized stay in the ledger.
func (s *recurringService) DeleteRecurring(id string) error {
	rec, err := s.GetRecurringByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(rec).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ProcessDue materializes one ledger transaction per elapsed occurrence of
// every active definition and rolls their NextDate past asOf. A definition
// that sat idle for five days yields five transactions, each dated at its
// own occurrence, not at "now". The whole pass commits atomically.
func (s *recurringService) ProcessDue(asOf time.Time) (int, error) {
	var defs []models.RecurringTransaction
	if err := s.db.Where("is_active = ?", true).Find(&defs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	materialized := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, def := range defs {
			advanced, occurrences := schedule.Advance(def, asOf)
			if len(occurrences) == 0 {
				continue
			}

			for _, occ := range occurrences {
				txn := &models.Transaction{
					Description: def.Description,
					Amount:      def.Amount,
					Category:    def.Category,
					Date:        occ,
				}
				if err := tx.Create(txn).Error; err != nil {
					return err
				}
				materialized++
			}

			if err := tx.Model(&def).Update("next_date", advanced.NextDate).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if materialized > 0 {
		logger.Get().Infow("materialized recurring transactions",
			"count", materialized,
			"as_of", asOf.Format("2006-01-02"),
		)
	}

	return materialized, nil
}
