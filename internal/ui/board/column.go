package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/walrus/internal/ui/styles"
)

// renderColumn renders a board column with header and task cards
func renderColumn(
	col Column,
	cursorTask int,
	isActive bool,
	opts Options,
	width int,
	height int,
	s *styles.Styles,
) string {
	headerText := fmt.Sprintf("─ %s (%d) ", col.Title(), len(col.Tasks))
	remainingWidth := width - lipgloss.Width(headerText) - 2 // Account for padding
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := s.Activity(col.Activity, isActive).Render(headerText)

	cardStrings := make([]string, 0, len(col.Tasks))
	cardWidth := width - 4 // Account for column border and padding
	for i, task := range col.Tasks {
		isCursor := isActive && i == cursorTask
		cardStrings = append(cardStrings, renderCard(task, col.Priority[task.Key()], isCursor, opts.ShowDescriptors, cardWidth, s))
	}

	columnStyle := s.Column.Width(width).Height(height)
	columnContent := columnStyle.Render(strings.Join(cardStrings, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}
