// Package rules implements the notification rule engine: a pure evaluator
// that turns a point-in-time snapshot of the ledger, budgets, goals, and
// recurring transactions into a minimal stream of notifications.
//
// Evaluate never touches storage or the wall clock. The caller loads the
// snapshot and latch state, invokes Evaluate on every relevant state change
// or timer tick, and persists the emitted notifications together with the
// new latches in a single critical section.
package rules

import (
	"fmt"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/progress"
	"fintrack/internal/schedule"
)

// Fixed rule constants, in cents.
const (
	// LowBalanceCriticalFloor triggers a second, critical notification on
	// top of the configurable low-balance warning.
	LowBalanceCriticalFloor = 100000 // 1,000 currency units

	// LargeExpenseFloor is the per-transaction size above which an expense
	// counts toward the unusual-spending rule.
	LargeExpenseFloor = 1000000 // 10,000 currency units

	// UnusualSpendingCount is the number of large expenses in the trailing
	// window that must be exceeded before the rule fires.
	UnusualSpendingCount = 2

	// UnusualSpendingWindowDays is the trailing calendar window (today
	// minus 6 days through today, inclusive).
	UnusualSpendingWindowDays = 7
)

// billReminderLeads are the calendar-day lead times checked for upcoming
// bills, with their priorities. The checks are independent: a day-3
// reminder is not suppressed because the day-7 reminder already fired.
var billReminderLeads = []struct {
	Days     int
	Priority models.NotificationPriority
}{
	{7, models.PriorityMedium},
	{3, models.PriorityMedium},
	{1, models.PriorityHigh},
}

// BudgetStanding pairs a budget with its spending for the current period
// window, as positive cents.
type BudgetStanding struct {
	Budget models.Budget
	Spent  int64
}

// Snapshot is the engine's entire view of the world for one evaluation.
type Snapshot struct {
	TotalBalance int64
	Budgets      []BudgetStanding
	Goals        []models.Goal
	Recurring    []models.RecurringTransaction
	Transactions []models.Transaction
}

// Result carries the notifications to emit and the latch rows to persist.
// Both are empty when nothing crossed a threshold.
type Result struct {
	Notifications []models.Notification
	NewLatches    []models.NotificationLatch
}

// Evaluate runs every enabled rule against the snapshot. It is
// deterministic given (snapshot, settings, latches, now) and never mutates
// its inputs; newly set latches are returned, not applied.
func Evaluate(snap Snapshot, settings models.NotificationSettings, latches LatchSet, now time.Time) Result {
	var res Result

	if settings.BillReminders {
		evalBillReminders(&res, snap.Recurring, latches, now)
	}
	if settings.BudgetAlerts {
		evalBudgetAlerts(&res, snap.Budgets, settings)
	}
	if settings.GoalUpdates {
		evalGoalMilestones(&res, snap.Goals, settings.GoalMilestones, latches)
	}
	if settings.LowBalanceWarnings {
		evalLowBalance(&res, snap.TotalBalance, settings.LowBalanceThreshold)
	}
	if settings.UnusualSpendingAlerts {
		evalUnusualSpending(&res, snap.Transactions, now)
	}

	return res
}

func emit(res *Result, typ models.NotificationType, priority models.NotificationPriority, message string) {
	res.Notifications = append(res.Notifications, models.Notification{
		Type:     typ,
		Message:  message,
		Priority: priority,
	})
}

func latch(res *Result, entityID, key string) {
	res.NewLatches = append(res.NewLatches, models.NotificationLatch{
		EntityID: entityID,
		Key:      key,
	})
}

func evalBillReminders(res *Result, recurring []models.RecurringTransaction, latches LatchSet, now time.Time) {
	for _, def := range recurring {
		if !def.IsActive {
			continue
		}
		if def.EndDate != nil && def.NextDate.After(*def.EndDate) {
			continue
		}
		for _, lead := range billReminderLeads {
			if !schedule.SameCalendarDay(def.NextDate, now.AddDate(0, 0, lead.Days)) {
				continue
			}
			key := BillReminderKey(def.NextDate.Format("2006-01-02"), lead.Days)
			if latches.Has(def.ID, key) {
				continue
			}
			var msg string
			if lead.Days == 1 {
				msg = fmt.Sprintf("%s (%s) is due tomorrow", def.Description, money.Format(def.Amount))
			} else {
				msg = fmt.Sprintf("%s (%s) is due in %d days", def.Description, money.Format(def.Amount), lead.Days)
			}
			emit(res, models.NotificationBillReminder, lead.Priority, msg)
			latch(res, def.ID, key)
		}
	}
}

func evalBudgetAlerts(res *Result, budgets []BudgetStanding, settings models.NotificationSettings) {
	for _, bs := range budgets {
		p := progress.Budget(bs.Budget, bs.Spent)
		switch {
		case p.Percentage >= settings.BudgetCriticalPct || p.IsOverBudget:
			emit(res, models.NotificationBudgetCritical, models.PriorityHigh,
				fmt.Sprintf("Critical: you've used %.0f%% of your %s budget", p.Percentage, bs.Budget.Category))
		case p.Percentage >= settings.BudgetWarningPct:
			emit(res, models.NotificationBudgetWarning, models.PriorityMedium,
				fmt.Sprintf("You've used %.0f%% of your %s budget", p.Percentage, bs.Budget.Category))
		}
	}
}

func milestonePriority(pct int) models.NotificationPriority {
	switch {
	case pct >= 100:
		return models.PriorityHigh
	case pct >= 75:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func evalGoalMilestones(res *Result, goals []models.Goal, milestones []int, latches LatchSet) {
	for _, g := range goals {
		p := progress.Goal(g)
		for _, m := range milestones {
			if p.Percentage < float64(m) {
				continue
			}
			key := MilestoneKey(m)
			if latches.Has(g.ID, key) {
				continue
			}
			if m >= 100 {
				emit(res, models.NotificationGoalCompleted, models.PriorityHigh,
					fmt.Sprintf("Congratulations! You reached your goal %q", g.Name))
			} else {
				emit(res, models.NotificationGoalMilestone, milestonePriority(m),
					fmt.Sprintf("You're %d%% of the way to %q", m, g.Name))
			}
			latch(res, g.ID, key)
		}
	}
}

func evalLowBalance(res *Result, balance, threshold int64) {
	if balance <= 0 {
		return
	}
	if balance < threshold {
		emit(res, models.NotificationLowBalance, models.PriorityHigh,
			fmt.Sprintf("Your balance has dropped below %s", money.Format(threshold)))
	}
	if balance < LowBalanceCriticalFloor {
		emit(res, models.NotificationLowBalanceCritical, models.PriorityCritical,
			fmt.Sprintf("Critical: your balance is below %s", money.Format(LowBalanceCriticalFloor)))
	}
}

func evalUnusualSpending(res *Result, transactions []models.Transaction, now time.Time) {
	windowStart := schedule.StartOfDay(now.AddDate(0, 0, -(UnusualSpendingWindowDays - 1)))
	windowEnd := schedule.StartOfDay(now).AddDate(0, 0, 1).Add(-time.Nanosecond)
	count := 0
	for _, t := range transactions {
		if !t.IsExpense() || -t.Amount <= LargeExpenseFloor {
			continue
		}
		if t.Date.Before(windowStart) || t.Date.After(windowEnd) {
			continue
		}
		count++
	}
	if count > UnusualSpendingCount {
		emit(res, models.NotificationUnusualSpending, models.PriorityMedium,
			fmt.Sprintf("Unusual spending: %d large expenses in the last %d days", count, UnusualSpendingWindowDays))
	}
}
