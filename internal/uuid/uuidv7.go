// Package uuid generates time-ordered identifiers for primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Version 7 ids embed a millisecond timestamp,
// so rows sort by creation order even when created_at collides; the capped
// notification log's eviction order depends on this.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4
		// rather than surfacing an error from every insert.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
