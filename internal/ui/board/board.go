// Package board renders a bucket as a three-column board, one column per
// activity.
package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/walrus/internal/ui/styles"
)

// Options controls what cards show
type Options struct {
	ShowDescriptors bool
}

// Render renders the entire board
func Render(
	columns []Column,
	cursor Cursor,
	opts Options,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := width / len(columns)

	columnStrings := make([]string, 0, len(columns))
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(col, cursorTask, isActive, opts, columnWidth, height, s)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
