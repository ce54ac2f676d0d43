package domain

import (
	"sync"
	"time"
)

// Filter is a one-shot query binding a task collection to criteria
type Filter interface {
	// Results returns the matching tasks. The first call computes them; later
	// calls return the same slice.
	Results() []*Task
	// Criteria returns a copy of the criteria the filter was built with
	Criteria() Criteria
}

// FilterBuilder creates a filter over tasks
type FilterBuilder func(tasks []*Task, criteria Criteria) Filter

// NewFilterBuilder returns the builder for TaskFilter
func NewFilterBuilder() FilterBuilder {
	return func(tasks []*Task, criteria Criteria) Filter {
		return NewTaskFilter(tasks, criteria)
	}
}

// stage narrows a working set of tasks
type stage func(c Criteria, tasks []*Task) []*Task

// pipeline is the fixed stage order. Every stage only narrows, so the stages
// compose by intersection.
var pipeline = []stage{
	filterBy(func(c Criteria) *Activity { return c.Activity }, (*Task).Activity,
		func(value, bound Activity) bool { return value == bound }),
	filterBy(func(c Criteria) *time.Time { return c.DateAtOrBefore }, (*Task).UpdatedAt,
		func(value, bound time.Time) bool { return !value.After(bound) }),
	filterBy(func(c Criteria) *time.Time { return c.DateBefore }, (*Task).UpdatedAt,
		func(value, bound time.Time) bool { return value.Before(bound) }),
	filterBy(func(c Criteria) *time.Time { return c.DateAtOrAfter }, (*Task).UpdatedAt,
		func(value, bound time.Time) bool { return !value.Before(bound) }),
	filterBy(func(c Criteria) *time.Time { return c.DateAfter }, (*Task).UpdatedAt,
		func(value, bound time.Time) bool { return value.After(bound) }),
}

// filterBy builds a stage that passes tasks through untouched when its bound
// is absent
func filterBy[T any](bound func(Criteria) *T, value func(*Task) T, keep func(value, bound T) bool) stage {
	return func(c Criteria, tasks []*Task) []*Task {
		b := bound(c)
		if b == nil {
			return tasks
		}

		result := make([]*Task, 0, len(tasks))
		for _, task := range tasks {
			if keep(value(task), *b) {
				result = append(result, task)
			}
		}
		return result
	}
}

// TaskFilter runs the stage pipeline once and memoizes the result
type TaskFilter struct {
	tasks    []*Task
	criteria Criteria

	once    sync.Once
	results []*Task
}

// NewTaskFilter creates a filter over tasks. The criteria are copied.
func NewTaskFilter(tasks []*Task, criteria Criteria) *TaskFilter {
	return &TaskFilter{
		tasks:    tasks,
		criteria: criteria.Clone(),
	}
}

// Results returns the tasks matching every present criterion, in input order.
// With empty criteria the input collection itself is returned.
func (f *TaskFilter) Results() []*Task {
	f.once.Do(func() {
		f.results = Apply(f.criteria, f.tasks)
	})
	return f.results
}

// Criteria returns a copy of the criteria holding only the present fields
func (f *TaskFilter) Criteria() Criteria {
	return f.criteria.Clone()
}

// Apply runs the stage pipeline over tasks without memoization
func Apply(c Criteria, tasks []*Task) []*Task {
	result := tasks
	for _, s := range pipeline {
		result = s(c, result)
	}
	return result
}

// Matches returns true if the task passes every present criterion
func (c Criteria) Matches(t *Task) bool {
	return len(Apply(c, []*Task{t})) == 1
}
