package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_Column(t *testing.T) {
	tests := []struct {
		activity Activity
		want     int
	}{
		{ActivityNonActive, 0},
		{ActivityActive, 1},
		{ActivityClosed, 2},
		{Activity("unknown"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.activity), func(t *testing.T) {
			if got := tt.activity.Column(); got != tt.want {
				t.Errorf("Activity.Column() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseActivity(t *testing.T) {
	tests := []struct {
		in      string
		want    Activity
		wantErr bool
	}{
		{"Non-Active", ActivityNonActive, false},
		{"NonActive", ActivityNonActive, false},
		{"Active", ActivityActive, false},
		{"Closed", ActivityClosed, false},
		{"closed", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseActivity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    Size
		wantErr bool
	}{
		{"", Unsized, false},
		{"No Size", Unsized, false},
		{"Tiny", SizeTiny, false},
		{"Extra Small", SizeExtraSmall, false},
		{"Extra Large", SizeExtraLarge, false},
		{"Huge", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSize_Rank(t *testing.T) {
	assert.Equal(t, 0, Unsized.Rank())
	for i := 1; i < len(Sizes); i++ {
		assert.Less(t, Sizes[i-1].Rank(), Sizes[i].Rank(), "%s should rank below %s", Sizes[i-1], Sizes[i])
	}
}

func TestDescriptor(t *testing.T) {
	text, ok := NoDescriptor.Get()
	assert.False(t, ok)
	assert.Empty(t, text)
	assert.Equal(t, "none", NoDescriptor.String())

	d := Describe("waiting on review")
	text, ok = d.Get()
	assert.True(t, ok)
	assert.Equal(t, "waiting on review", text)
	assert.Equal(t, "waiting on review", d.String())

	// an empty description is still present
	_, ok = Describe("").Get()
	assert.True(t, ok)
}

func TestTaskBuilder_New(t *testing.T) {
	clock, _, build := newTestBuilders()
	created := clock.peek()

	task := build("test task", "", nil)

	assert.Equal(t, "test task", task.Name())
	assert.Equal(t, Unsized, task.Size())
	assert.Equal(t, "task-1", task.Key())
	require.NotNil(t, task.States())
	assert.Equal(t, StateCreated, task.States().StateName())
	assert.Equal(t, ActivityNonActive, task.States().Activity())
	assert.Equal(t, NoDescriptor, task.States().Descriptor())
	assert.True(t, task.States().IsOrigin())
	assert.Equal(t, created, task.UpdatedAt())
}

func TestTaskBuilder_SizeAndKeys(t *testing.T) {
	_, _, build := newTestBuilders()

	first := build("my item", SizeTiny, nil)
	second := build("other item", SizeLarge, nil)

	assert.Equal(t, SizeTiny, first.Size())
	assert.Equal(t, SizeLarge, second.Size())
	assert.NotEqual(t, first.Key(), second.Key())
}

func TestTaskBuilder_CallsObserverOnCreation(t *testing.T) {
	_, _, build := newTestBuilders()

	var seen []*Task
	task := build("observed", SizeSmall, func(t *Task) { seen = append(seen, t) })

	require.Len(t, seen, 1)
	assert.Same(t, task, seen[0])
	assert.Equal(t, StateCreated, seen[0].States().StateName())
}

func TestTask_ChangeState(t *testing.T) {
	clock, _, build := newTestBuilders()
	task := build("new Item", "", nil)
	origin := task.States()

	at := clock.peek()
	task.ChangeState("ready", ActivityActive, Describe("someone is working"))

	head := task.States()
	assert.Equal(t, "ready", head.StateName())
	assert.Equal(t, ActivityActive, head.Activity())
	assert.Equal(t, at, head.Date())
	assert.Equal(t, "someone is working", head.Descriptor().String())
	assert.Same(t, origin, head.Previous())
	assert.Equal(t, 2, head.Count())
}

func TestTask_ActivityFollowsHead(t *testing.T) {
	_, _, build := newTestBuilders()
	task := build("new Item", "", nil)
	assert.Equal(t, task.States().Activity(), task.Activity())

	steps := []struct {
		name     string
		activity Activity
	}{
		{"ready", ActivityNonActive},
		{"started", ActivityActive},
		{"finished", ActivityClosed},
		{"reopened", ActivityActive},
	}

	for i, step := range steps {
		task.ChangeState(step.name, step.activity, NoDescriptor)
		assert.Equal(t, step.activity, task.Activity())
		assert.Equal(t, task.States().Activity(), task.Activity())
		assert.Equal(t, i+2, task.States().Count())
	}
	assert.Equal(t, StateCreated, task.States().First().StateName())
}

func TestTask_Callbacks(t *testing.T) {
	_, _, build := newTestBuilders()
	task := build("new Item", "", nil)

	var first, second int
	task.RegisterCallback(func(*Task) { first++ })
	task.ChangeState("a", ActivityActive, NoDescriptor)

	// last registration wins
	task.RegisterCallback(func(*Task) { second++ })
	task.ChangeState("b", ActivityActive, NoDescriptor)

	task.ClearCallback()
	task.ChangeState("c", ActivityClosed, NoDescriptor)

	task.RegisterCallback(nil)
	task.ChangeState("d", ActivityClosed, NoDescriptor)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestTask_CallbackReceivesUpdatedTask(t *testing.T) {
	_, _, build := newTestBuilders()

	var states []string
	task := build("new Item", "", func(t *Task) { states = append(states, t.States().StateName()) })
	task.ChangeState("started", ActivityActive, NoDescriptor)

	assert.Equal(t, []string{StateCreated, "started"}, states)
}

func TestTask_CallbackPanicPropagates(t *testing.T) {
	_, _, build := newTestBuilders()
	task := build("new Item", "", nil)
	task.RegisterCallback(func(*Task) { panic("boom") })

	assert.PanicsWithValue(t, "boom", func() {
		task.ChangeState("started", ActivityActive, NoDescriptor)
	})
	// the transition happened before the observer ran
	assert.Equal(t, "started", task.States().StateName())
}

func TestTask_String(t *testing.T) {
	_, _, build := newTestBuilders()
	task := build("A new task", SizeSmall, nil)
	task.ChangeState(StateQueued, ActivityNonActive, Describe("team A's queue"))

	want := strings.Join([]string{
		"Task: A new task",
		"Size: Small",
		"State: Queued",
		"Activity: Non-Active",
		"Modified: " + task.UpdatedAt().Format(time.RFC3339),
		"Descriptor: team A's queue",
	}, "\n")
	assert.Equal(t, want, task.String())

	bare := build("bare", "", nil)
	assert.Contains(t, bare.String(), "Size: No Size")
	assert.Contains(t, bare.String(), "Descriptor: none")
}
