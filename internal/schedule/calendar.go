package schedule

import (
	"time"

	"fintrack/internal/models"
)

// PeriodWindow returns the calendar-aligned window containing now for the
// given budget period: the ISO week (Monday start), the calendar month, or
// the calendar year. The end bound is inclusive, at the last nanosecond of
// the final day.
func PeriodWindow(now time.Time, period models.BudgetPeriod) (start, end time.Time) {
	switch period {
	case models.BudgetPeriodWeekly:
		offset := int(now.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7 // Sunday
		}
		start = time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case models.BudgetPeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case models.BudgetPeriodYearly:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	}
	return start, end
}

// SameCalendarDay reports whether a and b fall on the same calendar date,
// regardless of time of day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
