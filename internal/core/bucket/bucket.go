// Package bucket holds named task collections. A bucket stamps a "Queued"
// transition on every task it receives and answers activity-partitioned
// queries through domain filters.
package bucket

import (
	"fmt"

	"github.com/riordanpawley/walrus/internal/domain"
)

// Bucket is a named collection of tasks
type Bucket interface {
	Name() string
	// Add queues task in the bucket and returns it
	Add(task *domain.Task) *domain.Task
	// AddNew builds a task and adds it
	AddNew(name string, size domain.Size) *domain.Task
	AllTasks(criteria domain.Criteria) []*domain.Task
	// CompleteTasks, ActiveTasks and NonActiveTasks force the activity
	// criterion, replacing any activity the caller supplied
	CompleteTasks(criteria domain.Criteria) []*domain.Task
	ActiveTasks(criteria domain.Criteria) []*domain.Task
	NonActiveTasks(criteria domain.Criteria) []*domain.Task
	// Priority is the 1-based position of task among the bucket's
	// non-active tasks, in insertion order
	Priority(task *domain.Task) (int, error)
	Len() int
}

// Builder creates a bucket with the given name
type Builder func(name string) Bucket

// Strategy selects a bucket implementation
type Strategy string

const (
	// StrategyTeam scans every task and filters by activity per query
	StrategyTeam Strategy = "team"
	// StrategyWalrus keeps tasks partitioned by activity as they change
	StrategyWalrus Strategy = "walrus"
)

// ParseStrategy parses a strategy name
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyTeam, StrategyWalrus:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown bucket strategy %q", s)
}

// NewBuilder returns a builder for the given strategy
func NewBuilder(strategy Strategy, newTask domain.TaskBuilder, newFilter domain.FilterBuilder) (Builder, error) {
	switch strategy {
	case StrategyTeam:
		return func(name string) Bucket { return NewTeamBucket(name, newTask, newFilter) }, nil
	case StrategyWalrus:
		return func(name string) Bucket { return NewWalrusBucket(name, newTask, newFilter) }, nil
	}
	return nil, fmt.Errorf("unknown bucket strategy %q", strategy)
}

func queue(task *domain.Task, bucketName string) {
	task.ChangeState(domain.StateQueued, domain.ActivityNonActive, domain.Describe(bucketName))
}

func priorityIn(queued []*domain.Task, task *domain.Task, bucketName string) (int, error) {
	for i, t := range queued {
		if t == task {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("task %s is not queued in %q: %w", task.Key(), bucketName, domain.ErrNotFound)
}
