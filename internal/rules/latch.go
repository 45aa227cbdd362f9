package rules

import (
	"fmt"

	"fintrack/internal/models"
)

// LatchKey identifies a one-shot notification that has already fired for a
// given entity.
type LatchKey struct {
	EntityID string
	Key      string
}

// LatchSet is the in-memory view of the latch table used during one
// evaluation pass.
type LatchSet map[LatchKey]struct{}

// NewLatchSet builds a LatchSet from persisted latch rows.
func NewLatchSet(latches []models.NotificationLatch) LatchSet {
	set := make(LatchSet, len(latches))
	for _, l := range latches {
		set[LatchKey{EntityID: l.EntityID, Key: l.Key}] = struct{}{}
	}
	return set
}

// Has reports whether the (entity, key) pair has already been notified.
func (s LatchSet) Has(entityID, key string) bool {
	_, ok := s[LatchKey{EntityID: entityID, Key: key}]
	return ok
}

// MilestoneKey returns the latch key for a goal milestone percentage.
func MilestoneKey(pct int) string {
	return fmt.Sprintf("milestone:%d", pct)
}

// BillReminderKey returns the latch key for one reminder lead time of one
// occurrence. Including the occurrence date lets the same lead time fire
// again for the next occurrence.
func BillReminderKey(occurrence string, leadDays int) string {
	return fmt.Sprintf("bill:%s:%d", occurrence, leadDays)
}
