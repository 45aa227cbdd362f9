package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestGetSettings(t *testing.T) {
	t.Run("creates_defaults_on_first_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		settings, err := svc.GetSettings()
		testutil.AssertNoError(t, err)

		if !settings.BillReminders || !settings.BudgetAlerts {
			t.Error("expected rule switches on by default")
		}
		if settings.BudgetWarningPct != models.DefaultBudgetWarningPct {
			t.Errorf("expected warning pct %v, got %v", models.DefaultBudgetWarningPct, settings.BudgetWarningPct)
		}
		if settings.LowBalanceThreshold != models.DefaultLowBalanceThreshold {
			t.Errorf("expected threshold %d, got %d", models.DefaultLowBalanceThreshold, settings.LowBalanceThreshold)
		}

		var count int64
		db.Model(&models.NotificationSettings{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single settings row, got %d", count)
		}
	})

	t.Run("fills_missing_fields_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		// A row written before thresholds existed.
		row := models.NotificationSettings{BillReminders: true}
		testutil.AssertNoError(t, db.Create(&row).Error)

		settings, err := svc.GetSettings()
		testutil.AssertNoError(t, err)

		if settings.BudgetCriticalPct != models.DefaultBudgetCriticalPct {
			t.Errorf("expected critical pct filled with default, got %v", settings.BudgetCriticalPct)
		}
		if len(settings.GoalMilestones) == 0 {
			t.Error("expected milestones filled with defaults")
		}
	})
}

func TestUpdateSettings(t *testing.T) {
	t.Run("partial_update_preserves_rest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		updated, err := svc.UpdateSettings(map[string]interface{}{
			"low_balance_threshold": int64(200000),
			"bill_reminders":        false,
		})
		testutil.AssertNoError(t, err)

		if updated.LowBalanceThreshold != 200000 {
			t.Errorf("expected threshold 200000, got %d", updated.LowBalanceThreshold)
		}
		if updated.BillReminders {
			t.Error("expected bill reminders off")
		}
		if !updated.BudgetAlerts {
			t.Error("untouched switches must keep their values")
		}
	})

	t.Run("empty_update_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db)

		before, err := svc.GetSettings()
		testutil.AssertNoError(t, err)

		after, err := svc.UpdateSettings(map[string]interface{}{})
		testutil.AssertNoError(t, err)

		if before.LowBalanceThreshold != after.LowBalanceThreshold {
			t.Error("expected settings unchanged")
		}
	})
}
