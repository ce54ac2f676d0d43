// Package clock supplies timestamps to the task tracker.
package clock

import (
	"sync"
	"time"
)

// System reads the wall clock
type System struct{}

// Now returns the current time
func (System) Now() time.Time {
	return time.Now()
}

// Stepping is a deterministic clock. Each call to Now returns the current
// value and then advances it by the step.
type Stepping struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepping creates a stepping clock starting at start
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{next: start, step: step}
}

// Now returns the current value and advances the clock
func (c *Stepping) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.next
	c.next = c.next.Add(c.step)
	return r
}
