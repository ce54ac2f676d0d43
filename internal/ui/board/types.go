package board

import (
	"github.com/riordanpawley/walrus/internal/core/bucket"
	"github.com/riordanpawley/walrus/internal/domain"
)

// Column represents a board column holding the tasks of one activity
type Column struct {
	Activity domain.Activity
	Tasks    []*domain.Task
	// Priority holds the queue position of each non-active task by key
	Priority map[string]int
}

// Title returns the column header text
func (c Column) Title() string {
	return c.Activity.String()
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index (0-2)
	Task   int // Task index within column
}

// Columns reads b into one column per activity, in board order
func Columns(b bucket.Bucket) []Column {
	all := domain.Criteria{}
	columns := []Column{
		{Activity: domain.ActivityNonActive, Tasks: b.NonActiveTasks(all)},
		{Activity: domain.ActivityActive, Tasks: b.ActiveTasks(all)},
		{Activity: domain.ActivityClosed, Tasks: b.CompleteTasks(all)},
	}

	queued := &columns[domain.ActivityNonActive.Column()]
	queued.Priority = make(map[string]int, len(queued.Tasks))
	for _, t := range queued.Tasks {
		if p, err := b.Priority(t); err == nil {
			queued.Priority[t.Key()] = p
		}
	}

	return columns
}

// Clamp moves the cursor back inside columns
func (c Cursor) Clamp(columns []Column) Cursor {
	if len(columns) == 0 {
		return Cursor{}
	}
	c.Column = max(0, min(c.Column, len(columns)-1))
	c.Task = max(0, min(c.Task, len(columns[c.Column].Tasks)-1))
	return c
}

// Selected returns the task under the cursor, or nil for an empty column
func (c Cursor) Selected(columns []Column) *domain.Task {
	if c.Column < 0 || c.Column >= len(columns) {
		return nil
	}
	tasks := columns[c.Column].Tasks
	if c.Task < 0 || c.Task >= len(tasks) {
		return nil
	}
	return tasks[c.Task]
}

// Follow returns the cursor pointing at task, or c unchanged when the task
// is not on the board
func (c Cursor) Follow(columns []Column, task *domain.Task) Cursor {
	for ci, col := range columns {
		for ti, t := range col.Tasks {
			if t == task {
				return Cursor{Column: ci, Task: ti}
			}
		}
	}
	return c
}
