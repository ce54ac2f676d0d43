package domain

import (
	"fmt"
	"strings"
	"time"
)

// Names of the transitions the tracker itself performs
const (
	StateCreated = "Created"
	StateQueued  = "Queued"
)

// TaskObserver is notified synchronously after a task is created and after
// every state change
type TaskObserver func(*Task)

func noopObserver(*Task) {}

// Task is a unit of trackable work. Its activity is always the activity of
// the head of its state-change chain.
type Task struct {
	key      string
	name     string
	size     Size
	states   *StateChange
	newState StateChangeBuilder
	observer TaskObserver
}

// TaskBuilder creates a task. An empty size means Unsized; a nil observer
// means no observer.
type TaskBuilder func(name string, size Size, observer TaskObserver) *Task

// NewTaskBuilder returns a builder that records states with newState and
// keys tasks from ids
func NewTaskBuilder(newState StateChangeBuilder, ids IDSource) TaskBuilder {
	return func(name string, size Size, observer TaskObserver) *Task {
		if size == "" {
			size = Unsized
		}
		t := &Task{
			key:      ids.NewID(),
			name:     name,
			size:     size,
			newState: newState,
			observer: noopObserver,
		}
		t.states = newState(StateCreated, ActivityNonActive, NoDescriptor, nil)
		if observer != nil {
			t.observer = observer
			observer(t)
		}
		return t
	}
}

func (t *Task) Key() string  { return t.key }
func (t *Task) Name() string { return t.name }
func (t *Task) Size() Size   { return t.size }

// States returns the head of the state-change chain
func (t *Task) States() *StateChange {
	return t.states
}

// Activity returns the activity of the current state
func (t *Task) Activity() Activity {
	return t.states.activity
}

// UpdatedAt returns the timestamp of the current state
func (t *Task) UpdatedAt() time.Time {
	return t.states.date
}

// ChangeState appends a new state to the chain and notifies the observer
func (t *Task) ChangeState(stateName string, activity Activity, descriptor Descriptor) {
	t.states = t.newState(stateName, activity, descriptor, t.states)
	t.observer(t)
}

// RegisterCallback replaces the observer. Registering nil clears it.
func (t *Task) RegisterCallback(observer TaskObserver) {
	if observer == nil {
		observer = noopObserver
	}
	t.observer = observer
}

// ClearCallback removes the observer
func (t *Task) ClearCallback() {
	t.observer = noopObserver
}

// String returns a multi-line summary of the task
func (t *Task) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", t.name)
	fmt.Fprintf(&b, "Size: %s\n", t.size)
	fmt.Fprintf(&b, "State: %s\n", t.states.stateName)
	fmt.Fprintf(&b, "Activity: %s\n", t.states.activity)
	fmt.Fprintf(&b, "Modified: %s\n", t.states.date.Format(time.RFC3339))
	fmt.Fprintf(&b, "Descriptor: %s", t.states.descriptor)
	return b.String()
}
