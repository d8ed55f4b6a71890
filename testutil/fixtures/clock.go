package fixtures

import (
	"sync"
	"time"
)

// Today is the default "now" of lending tests.
var Today = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

// Clock is a settable clock, safe for concurrent use. Its Now method satisfies lending.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a Clock standing at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Set moves the clock to now.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

// AdvanceDays moves the clock days forward, or backward for negative days.
func (c *Clock) AdvanceDays(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.AddDate(0, 0, days)
}
