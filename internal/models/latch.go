package models

// NotificationLatch records that a one-shot notification has already been
// emitted for an (entity, threshold) pair. Latches are cleared when the
// entity is edited or deleted; there is no automatic un-latching.
type NotificationLatch struct {
	Base
	EntityID string `gorm:"not null;uniqueIndex:idx_latch_entity_key" json:"entity_id"`
	Key      string `gorm:"not null;uniqueIndex:idx_latch_entity_key" json:"key"`
}
