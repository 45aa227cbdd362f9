package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/clock"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/rules"
	"fintrack/internal/schedule"
)

// alertService drives the notification rule engine. It assembles a snapshot
// of the world, runs the pure evaluator, and commits emitted notifications
// and latch rows in one transaction. A mutex serializes evaluate-and-commit
// so concurrent triggers cannot double-emit a latched notification.
type alertService struct {
	db            *gorm.DB
	transactions  TransactionServicer
	settings      SettingsServicer
	notifications NotificationServicer
	clk           clock.Clock

	mu sync.Mutex
}

// NewAlertService creates a new AlertServicer.
func NewAlertService(db *gorm.DB, transactions TransactionServicer, settings SettingsServicer, notifications NotificationServicer, clk clock.Clock) AlertServicer {
	return &alertService{
		db:            db,
		transactions:  transactions,
		settings:      settings,
		notifications: notifications,
		clk:           clk,
	}
}

// Evaluate runs every enabled rule against current state and returns the
// notifications that were emitted this cycle. Callers invoke it after any
// ledger, budget, goal, or recurring mutation, and on the periodic tick.
func (s *alertService) Evaluate() ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()

	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}

	snap, err := s.buildSnapshot(now)
	if err != nil {
		return nil, err
	}

	var latchRows []models.NotificationLatch
	if err := s.db.Find(&latchRows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	res := rules.Evaluate(*snap, *settings, rules.NewLatchSet(latchRows), now)
	if len(res.Notifications) == 0 && len(res.NewLatches) == 0 {
		return nil, nil
	}

	emitted := make([]models.Notification, len(res.Notifications))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range res.Notifications {
			n := res.Notifications[i]
			if err := s.notifications.Append(tx, &n); err != nil {
				return err
			}
			emitted[i] = n
		}
		for i := range res.NewLatches {
			if err := tx.Create(&res.NewLatches[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(emitted) > 0 {
		logger.Get().Infow("alert evaluation emitted notifications", "count", len(emitted))
	}

	return emitted, nil
}

// buildSnapshot collects everything the rule engine inspects: total
// balance, per-budget period spending, goals, active recurring definitions,
// and the trailing transaction window.
func (s *alertService) buildSnapshot(now time.Time) (*rules.Snapshot, error) {
	balance, err := s.transactions.TotalBalance()
	if err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := s.db.Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	standings := make([]rules.BudgetStanding, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.transactions.SpentInPeriod(b.Category, b.Period, now)
		if err != nil {
			return nil, err
		}
		standings = append(standings, rules.BudgetStanding{Budget: b, Spent: spent})
	}

	var goals []models.Goal
	if err := s.db.Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var recurring []models.RecurringTransaction
	if err := s.db.Where("is_active = ?", true).Find(&recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cutoff := schedule.StartOfDay(now.AddDate(0, 0, -(rules.UnusualSpendingWindowDays - 1)))
	recent, err := s.transactions.TransactionsSince(cutoff)
	if err != nil {
		return nil, err
	}

	return &rules.Snapshot{
		TotalBalance: balance,
		Budgets:      standings,
		Goals:        goals,
		Recurring:    recurring,
		Transactions: recent,
	}, nil
}
