// Package clock abstracts the current time so that schedule projection and
// rule evaluation are deterministic under test.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

// Now returns the current local time.
func (System) Now() time.Time { return time.Now() }

// Fixed is a clock pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time { return f.T }
