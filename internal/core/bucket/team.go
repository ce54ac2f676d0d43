package bucket

import (
	"slices"

	"github.com/riordanpawley/walrus/internal/domain"
)

// TeamBucket keeps one task list and filters it on every query
type TeamBucket struct {
	name      string
	tasks     []*domain.Task
	newTask   domain.TaskBuilder
	newFilter domain.FilterBuilder
}

// NewTeamBucket creates an empty bucket
func NewTeamBucket(name string, newTask domain.TaskBuilder, newFilter domain.FilterBuilder) *TeamBucket {
	return &TeamBucket{
		name:      name,
		newTask:   newTask,
		newFilter: newFilter,
	}
}

func (b *TeamBucket) Name() string { return b.name }
func (b *TeamBucket) Len() int     { return len(b.tasks) }

// Add appends task (once) and queues it
func (b *TeamBucket) Add(task *domain.Task) *domain.Task {
	if !slices.Contains(b.tasks, task) {
		b.tasks = append(b.tasks, task)
	}
	queue(task, b.name)
	return task
}

func (b *TeamBucket) AddNew(name string, size domain.Size) *domain.Task {
	return b.Add(b.newTask(name, size, nil))
}

// AllTasks filters a snapshot of the task list
func (b *TeamBucket) AllTasks(criteria domain.Criteria) []*domain.Task {
	return b.newFilter(slices.Clone(b.tasks), criteria).Results()
}

func (b *TeamBucket) CompleteTasks(criteria domain.Criteria) []*domain.Task {
	return b.AllTasks(criteria.WithActivity(domain.ActivityClosed))
}

func (b *TeamBucket) ActiveTasks(criteria domain.Criteria) []*domain.Task {
	return b.AllTasks(criteria.WithActivity(domain.ActivityActive))
}

func (b *TeamBucket) NonActiveTasks(criteria domain.Criteria) []*domain.Task {
	return b.AllTasks(criteria.WithActivity(domain.ActivityNonActive))
}

func (b *TeamBucket) Priority(task *domain.Task) (int, error) {
	return priorityIn(b.NonActiveTasks(domain.Criteria{}), task, b.name)
}
