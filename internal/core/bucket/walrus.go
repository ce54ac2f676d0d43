package bucket

import (
	"cmp"
	"slices"

	"github.com/riordanpawley/walrus/internal/domain"
)

// WalrusBucket keeps its tasks partitioned by activity. It registers itself
// as the observer of every task it holds and moves a task between partitions
// when its activity changes, so activity queries only scan one partition.
// Partitions keep insertion order, so results match TeamBucket exactly.
//
// A task has one observer, so the bucket stops hearing about a task once
// another bucket or caller registers a callback on it. Queries reconcile
// partitions against each task's current activity first, so results stay
// correct after the callback is replaced.
type WalrusBucket struct {
	name       string
	tasks      []*domain.Task
	order      map[*domain.Task]int
	placed     map[*domain.Task]domain.Activity
	partitions map[domain.Activity][]*domain.Task
	newTask    domain.TaskBuilder
	newFilter  domain.FilterBuilder
}

// NewWalrusBucket creates an empty bucket
func NewWalrusBucket(name string, newTask domain.TaskBuilder, newFilter domain.FilterBuilder) *WalrusBucket {
	return &WalrusBucket{
		name:       name,
		order:      make(map[*domain.Task]int),
		placed:     make(map[*domain.Task]domain.Activity),
		partitions: make(map[domain.Activity][]*domain.Task),
		newTask:    newTask,
		newFilter:  newFilter,
	}
}

func (b *WalrusBucket) Name() string { return b.name }
func (b *WalrusBucket) Len() int     { return len(b.tasks) }

// Add appends task (once), observes it and queues it
func (b *WalrusBucket) Add(task *domain.Task) *domain.Task {
	if _, ok := b.order[task]; !ok {
		b.order[task] = len(b.tasks)
		b.tasks = append(b.tasks, task)
	}
	task.RegisterCallback(b.track)
	queue(task, b.name)
	return task
}

func (b *WalrusBucket) AddNew(name string, size domain.Size) *domain.Task {
	return b.Add(b.newTask(name, size, nil))
}

// track moves task into the partition of its current activity
func (b *WalrusBucket) track(task *domain.Task) {
	now := task.Activity()
	if prev, ok := b.placed[task]; ok {
		if prev == now {
			return
		}
		b.partitions[prev] = slices.DeleteFunc(b.partitions[prev], func(t *domain.Task) bool { return t == task })
	}

	part := b.partitions[now]
	i, _ := slices.BinarySearchFunc(part, task, func(e, target *domain.Task) int {
		return cmp.Compare(b.order[e], b.order[target])
	})
	b.partitions[now] = slices.Insert(part, i, task)
	b.placed[task] = now
}

// reconcile re-places tasks whose activity changed without notifying the
// bucket
func (b *WalrusBucket) reconcile() {
	for _, task := range b.tasks {
		if b.placed[task] != task.Activity() {
			b.track(task)
		}
	}
}

func (b *WalrusBucket) AllTasks(criteria domain.Criteria) []*domain.Task {
	return b.newFilter(slices.Clone(b.tasks), criteria).Results()
}

func (b *WalrusBucket) partition(a domain.Activity, criteria domain.Criteria) []*domain.Task {
	b.reconcile()
	return b.newFilter(slices.Clone(b.partitions[a]), criteria.WithActivity(a)).Results()
}

func (b *WalrusBucket) CompleteTasks(criteria domain.Criteria) []*domain.Task {
	return b.partition(domain.ActivityClosed, criteria)
}

func (b *WalrusBucket) ActiveTasks(criteria domain.Criteria) []*domain.Task {
	return b.partition(domain.ActivityActive, criteria)
}

func (b *WalrusBucket) NonActiveTasks(criteria domain.Criteria) []*domain.Task {
	return b.partition(domain.ActivityNonActive, criteria)
}

func (b *WalrusBucket) Priority(task *domain.Task) (int, error) {
	return priorityIn(b.NonActiveTasks(domain.Criteria{}), task, b.name)
}
