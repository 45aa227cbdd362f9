package rules

import (
	"testing"

	"fintrack/internal/models"
)

func TestLatchSet(t *testing.T) {
	set := NewLatchSet([]models.NotificationLatch{
		{EntityID: "goal-1", Key: MilestoneKey(50)},
		{EntityID: "rec-1", Key: BillReminderKey("2025-04-01", 7)},
	})

	if !set.Has("goal-1", "milestone:50") {
		t.Error("expected goal-1 milestone:50 to be latched")
	}
	if set.Has("goal-1", "milestone:75") {
		t.Error("milestone:75 must not be latched")
	}
	if set.Has("goal-2", "milestone:50") {
		t.Error("latches are scoped per entity")
	}
	if !set.Has("rec-1", "bill:2025-04-01:7") {
		t.Error("expected bill reminder latch key")
	}
}
