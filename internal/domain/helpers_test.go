package domain

import (
	"fmt"
	"time"
)

// stepClock returns start, then advances by step on every call
type stepClock struct {
	next time.Time
	step time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{next: time.Date(1592, time.March, 14, 0, 0, 0, 0, time.UTC), step: 24 * time.Hour}
}

func (c *stepClock) Now() time.Time {
	r := c.next
	c.next = c.next.Add(c.step)
	return r
}

// peek returns the time the next call to Now will report
func (c *stepClock) peek() time.Time {
	return c.next
}

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("task-%d", s.n)
}

func newTestBuilders() (*stepClock, StateChangeBuilder, TaskBuilder) {
	clock := newStepClock()
	states := NewStateChangeBuilder(clock)
	return clock, states, NewTaskBuilder(states, &seqIDs{})
}
