package domain

import "sort"

// SortField represents a field to sort by
type SortField string

const (
	SortByName    SortField = "name"
	SortBySize    SortField = "size"
	SortByUpdated SortField = "updated"
)

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Sort represents sorting state
type Sort struct {
	Field SortField
	Order SortOrder
}

// Toggle toggles the sort field or direction
// If field is different, sets new field with ascending order
// If field is same, toggles between ascending and descending
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
	} else {
		s.Field = field
		s.Order = SortAsc
	}
}

// Apply returns a sorted copy of tasks. An unknown field keeps input order.
func (s *Sort) Apply(tasks []*Task) []*Task {
	if len(tasks) == 0 {
		return tasks
	}

	// Make a copy to avoid modifying the input slice
	result := make([]*Task, len(tasks))
	copy(result, tasks)

	var less func(a, b *Task) bool
	switch s.Field {
	case SortByName:
		less = func(a, b *Task) bool { return a.name < b.name }
	case SortBySize:
		less = func(a, b *Task) bool { return a.size.Rank() < b.size.Rank() }
	case SortByUpdated:
		less = func(a, b *Task) bool { return a.UpdatedAt().Before(b.UpdatedAt()) }
	default:
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		if s.Order == SortAsc {
			return less(result[i], result[j])
		}
		return less(result[j], result[i])
	})

	return result
}
