// Package guid supplies unique task keys.
package guid

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// UUIDSource issues random version 4 UUIDs
type UUIDSource struct{}

// NewID returns a new UUID string
func (UUIDSource) NewID() string {
	return uuid.NewString()
}

// Sequence issues predictable keys of the form "<prefix>-<n>", starting at 1
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequence creates a sequence with the given prefix
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next key in the sequence
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}
