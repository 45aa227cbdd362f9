package services

import (
	"testing"
	"time"

	"fintrack/internal/clock"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	t.Run("goal_milestone_fires_exactly_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		transactions := NewTransactionService(db)
		svc := NewAlertService(db, transactions, NewSettingsService(db), NewNotificationService(db), clock.Fixed{T: now})
		goals := NewGoalService(db)

		// Healthy balance so low-balance rules stay quiet.
		testutil.CreateTestTransaction(t, db, 10000000, "Income", now.AddDate(0, -1, 0))

		goal := testutil.CreateTestGoal(t, db, 100000)
		_, err := goals.Contribute(goal.ID, 50000)
		testutil.AssertNoError(t, err)

		first, err := svc.Evaluate()
		testutil.AssertNoError(t, err)
		second, err := svc.Evaluate()
		testutil.AssertNoError(t, err)

		// 50% crosses the 25 and 50 milestones.
		if len(first) != 2 {
			t.Fatalf("expected 2 notifications on first evaluation, got %d", len(first))
		}
		if len(second) != 0 {
			t.Errorf("expected latched milestones to stay quiet, got %d", len(second))
		}

		var latches int64
		db.Model(&models.NotificationLatch{}).Where("entity_id = ?", goal.ID).Count(&latches)
		if latches != 2 {
			t.Errorf("expected 2 persisted latches, got %d", latches)
		}
	})

	t.Run("editing_goal_reenables_milestones", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		transactions := NewTransactionService(db)
		svc := NewAlertService(db, transactions, NewSettingsService(db), NewNotificationService(db), clock.Fixed{T: now})
		goals := NewGoalService(db)

		testutil.CreateTestTransaction(t, db, 10000000, "Income", now.AddDate(0, -1, 0))

		goal := testutil.CreateTestGoal(t, db, 100000)
		_, err := goals.Contribute(goal.ID, 50000)
		testutil.AssertNoError(t, err)

		_, err = svc.Evaluate()
		testutil.AssertNoError(t, err)

		// The edit clears the goal's latches; the same milestones notify again.
		_, err = goals.UpdateGoal(goal.ID, "Renamed", nil, nil)
		testutil.AssertNoError(t, err)

		again, err := svc.Evaluate()
		testutil.AssertNoError(t, err)
		if len(again) != 2 {
			t.Errorf("expected milestones to re-fire after edit, got %d", len(again))
		}

		// The cleared latches must be gone for real, not soft-deleted, or the
		// unique (entity_id, key) index rejects the re-latch above.
		var rows int64
		db.Unscoped().Model(&models.NotificationLatch{}).Where("entity_id = ?", goal.ID).Count(&rows)
		if rows != 2 {
			t.Errorf("expected exactly 2 latch rows after re-latch, got %d", rows)
		}

		quiet, err := svc.Evaluate()
		testutil.AssertNoError(t, err)
		if len(quiet) != 0 {
			t.Errorf("expected re-latched milestones to stay quiet, got %d", len(quiet))
		}
	})

	t.Run("budget_alert_refires_while_condition_holds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		transactions := NewTransactionService(db)
		svc := NewAlertService(db, transactions, NewSettingsService(db), NewNotificationService(db), clock.Fixed{T: now})

		testutil.CreateTestTransaction(t, db, 10000000, "Income", now.AddDate(0, -1, 0))
		testutil.CreateTestBudget(t, db, "Food", 100000)
		testutil.CreateTestTransaction(t, db, -85000, "Food", now.AddDate(0, 0, -10))

		first, err := svc.Evaluate()
		testutil.AssertNoError(t, err)
		second, err := svc.Evaluate()
		testutil.AssertNoError(t, err)

		if countByType(first, models.NotificationBudgetWarning) != 1 ||
			countByType(second, models.NotificationBudgetWarning) != 1 {
			t.Error("budget warnings must re-fire on every evaluation while over the threshold")
		}
	})

	t.Run("bill_reminder_latches_per_occurrence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		transactions := NewTransactionService(db)
		svc := NewAlertService(db, transactions, NewSettingsService(db), NewNotificationService(db), clock.Fixed{T: now})

		testutil.CreateTestTransaction(t, db, 10000000, "Income", now.AddDate(0, -1, 0))
		testutil.CreateTestRecurring(t, db, -150000, models.FrequencyMonthly, now.AddDate(0, 0, 7))

		first, err := svc.Evaluate()
		testutil.AssertNoError(t, err)
		second, err := svc.Evaluate()
		testutil.AssertNoError(t, err)

		if countByType(first, models.NotificationBillReminder) != 1 {
			t.Fatalf("expected one reminder, got %+v", first)
		}
		if len(second) != 0 {
			t.Errorf("expected reminder latched on second evaluation, got %d", len(second))
		}
	})

	t.Run("low_balance_emits_warning_and_critical", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		transactions := NewTransactionService(db)
		svc := NewAlertService(db, transactions, NewSettingsService(db), NewNotificationService(db), clock.Fixed{T: now})

		testutil.CreateTestTransaction(t, db, 40000, "Income", now.AddDate(0, -1, 0))

		emitted, err := svc.Evaluate()
		testutil.AssertNoError(t, err)

		if countByType(emitted, models.NotificationLowBalance) != 1 {
			t.Error("expected the configurable low-balance warning")
		}
		if countByType(emitted, models.NotificationLowBalanceCritical) != 1 {
			t.Error("expected the critical notification below the fixed floor")
		}
	})

	t.Run("disabled_rules_stay_quiet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		transactions := NewTransactionService(db)
		settings := NewSettingsService(db)
		svc := NewAlertService(db, transactions, settings, NewNotificationService(db), clock.Fixed{T: now})

		_, err := settings.UpdateSettings(map[string]interface{}{"low_balance_warnings": false})
		testutil.AssertNoError(t, err)
		testutil.CreateTestTransaction(t, db, 40000, "Income", now.AddDate(0, -1, 0))

		emitted, err := svc.Evaluate()
		testutil.AssertNoError(t, err)

		if len(emitted) != 0 {
			t.Errorf("expected no notifications with the rule disabled, got %d", len(emitted))
		}
	})

	t.Run("emitted_notifications_are_persisted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		transactions := NewTransactionService(db)
		notifications := NewNotificationService(db)
		svc := NewAlertService(db, transactions, NewSettingsService(db), notifications, clock.Fixed{T: now})

		testutil.CreateTestTransaction(t, db, 40000, "Income", now.AddDate(0, -1, 0))

		emitted, err := svc.Evaluate()
		testutil.AssertNoError(t, err)

		count, err := notifications.UnreadCount()
		testutil.AssertNoError(t, err)
		if count != int64(len(emitted)) {
			t.Errorf("expected %d persisted unread notifications, got %d", len(emitted), count)
		}
	})
}

func countByType(notifications []models.Notification, typ models.NotificationType) int {
	n := 0
	for _, notif := range notifications {
		if notif.Type == typ {
			n++
		}
	}
	return n
}
