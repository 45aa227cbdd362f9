// Package schedule projects recurring transactions forward in time and
// provides calendar window helpers. All functions are pure: materializing
// due occurrences into the ledger is the caller's job.
package schedule

import (
	"time"

	"fintrack/internal/models"
)

// NextOccurrence returns t advanced by one whole frequency increment.
// Monthly preserves the day of month, clamping to the last valid day when
// the target month is shorter; yearly clamps Feb 29 to Feb 28 on non-leap
// years.
func NextOccurrence(t time.Time, freq models.Frequency) time.Time {
	switch freq {
	case models.FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return addMonthClamped(t)
	case models.FrequencyYearly:
		return addYearClamped(t)
	}
	return t
}

func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func addYearClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	year++
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsDue reports whether the definition has an occurrence at or before asOf.
func IsDue(def models.RecurringTransaction, asOf time.Time) bool {
	if !def.IsActive {
		return false
	}
	if def.NextDate.After(asOf) {
		return false
	}
	if def.EndDate != nil && def.NextDate.After(*def.EndDate) {
		return false
	}
	return true
}

// Advance rolls the definition forward past asOf, one frequency increment at
// a time, and returns every elapsed occurrence date. A definition left
// untouched for several periods yields one occurrence per elapsed period,
// never a single collapsed one.
func Advance(def models.RecurringTransaction, asOf time.Time) (models.RecurringTransaction, []time.Time) {
	var occurrences []time.Time
	for IsDue(def, asOf) {
		occurrences = append(occurrences, def.NextDate)
		def.NextDate = NextOccurrence(def.NextDate, def.Frequency)
	}
	return def, occurrences
}
