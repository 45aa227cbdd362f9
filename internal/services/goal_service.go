package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/progress"
)

// goalService handles savings goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a goal starting at zero progress.
func (s *goalService) CreateGoal(name string, targetAmount int64, targetDate *time.Time) (*models.Goal, error) {
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Target amount must be positive")
	}

	goal := &models.Goal{
		Name:         name,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetGoals returns a paginated list of goals.
func (s *goalService) GetGoals(page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Order("created_at").Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID.
func (s *goalService) GetGoalByID(id string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ?", id).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal edits a goal's name, target, or date. Editing resets the
// milestone latches so changed targets can re-notify.
func (s *goalService) UpdateGoal(id string, name string, targetAmount *int64, targetDate *time.Time) (*models.Goal, error) {
	goal, err := s.GetGoalByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if targetAmount != nil {
		if *targetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Target amount must be positive")
		}
		updates["target_amount"] = *targetAmount
		updates["completed"] = goal.CurrentAmount >= *targetAmount
	}
	if targetDate != nil {
		updates["target_date"] = targetDate
	}

	if len(updates) == 0 {
		return goal, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(goal).Updates(updates).Error; err != nil {
			return err
		}
		// Hard delete: the (entity_id, key) unique index sees soft-deleted
		// rows, which would block the engine from re-latching the milestone.
		return tx.Unscoped().Where("entity_id = ?", goal.ID).Delete(&models.NotificationLatch{}).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// Contribute increases the goal's current amount. Contributions are the only
// way CurrentAmount moves, and it only moves up; over-funding past the
// target is allowed.
func (s *goalService) Contribute(id string, amount int64) (*models.Goal, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidContribution
	}

	goal, err := s.GetGoalByID(id)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount += amount
	goal.Completed = goal.CurrentAmount >= goal.TargetAmount

	if err := s.db.Model(goal).Updates(map[string]interface{}{
		"current_amount": goal.CurrentAmount,
		"completed":      goal.Completed,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// DeleteGoal removes a goal together with its milestone latches.
func (s *goalService) DeleteGoal(id string) error {
	goal, err := s.GetGoalByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("entity_id = ?", goal.ID).Delete(&models.NotificationLatch{}).Error; err != nil {
			return err
		}
		return tx.Delete(goal).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetGoalStatus returns the goal with its computed progress.
func (s *goalService) GetGoalStatus(id string) (*GoalStatus, error) {
	goal, err := s.GetGoalByID(id)
	if err != nil {
		return nil, err
	}
	return &GoalStatus{
		Goal:     *goal,
		Progress: progress.Goal(*goal),
	}, nil
}
