package domain

import "time"

// StateChange is one immutable entry in a task's history. Each entry points
// back at the entry it replaced; the entry with no previous one is the origin.
type StateChange struct {
	stateName  string
	date       time.Time
	activity   Activity
	descriptor Descriptor
	previous   *StateChange
}

// StateChangeBuilder creates a state change stamped with the current time.
// A nil previous makes the new entry a chain origin.
type StateChangeBuilder func(stateName string, activity Activity, descriptor Descriptor, previous *StateChange) *StateChange

// NewStateChangeBuilder returns a builder that timestamps entries from clock
func NewStateChangeBuilder(clock Clock) StateChangeBuilder {
	return func(stateName string, activity Activity, descriptor Descriptor, previous *StateChange) *StateChange {
		return &StateChange{
			stateName:  stateName,
			date:       clock.Now(),
			activity:   activity,
			descriptor: descriptor,
			previous:   previous,
		}
	}
}

func (s *StateChange) StateName() string      { return s.stateName }
func (s *StateChange) Date() time.Time        { return s.date }
func (s *StateChange) Activity() Activity     { return s.activity }
func (s *StateChange) Descriptor() Descriptor { return s.descriptor }

// Previous returns the entry this one replaced, or nil at the origin
func (s *StateChange) Previous() *StateChange {
	return s.previous
}

// IsOrigin reports whether s starts its chain
func (s *StateChange) IsOrigin() bool {
	return s.previous == nil
}

// First walks back to the chain origin
func (s *StateChange) First() *StateChange {
	r := s
	for r.previous != nil {
		r = r.previous
	}
	return r
}

// FirstUpdateDate returns the timestamp of the chain origin
func (s *StateChange) FirstUpdateDate() time.Time {
	return s.First().date
}

// Count returns the number of entries from s back to the origin, inclusive
func (s *StateChange) Count() int {
	n := 0
	for r := s; r != nil; r = r.previous {
		n++
	}
	return n
}

// History returns the chain origin-first, ending with s
func (s *StateChange) History() []*StateChange {
	out := make([]*StateChange, s.Count())
	i := len(out) - 1
	for r := s; r != nil; r = r.previous {
		out[i] = r
		i--
	}
	return out
}
