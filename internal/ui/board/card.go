package board

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/walrus/internal/domain"
	"github.com/riordanpawley/walrus/internal/ui/styles"
)

// renderCard renders a task card. A priority of zero is not shown.
func renderCard(task *domain.Task, priority int, isCursor bool, showDescriptor bool, width int, s *styles.Styles) string {
	cardStyle := s.Card
	if isCursor {
		cardStyle = s.CardSelected
	}
	cardStyle = cardStyle.Width(width)

	// Account for padding (2), border (2) and the cursor marker
	maxNameLen := width - 4
	name := truncate(task.Name(), maxNameLen)

	cursor := ""
	if isCursor {
		cursor = "▶"
	}
	nameLine := cursor + s.TaskName.Render(name)

	badges := []string{s.SizeBadge(task.Size()).Render(task.Size().Short())}
	if priority > 0 {
		badges = append(badges, " ", s.PriorityBadge.Render(fmt.Sprintf("#%d", priority)))
	}
	badgeLine := lipgloss.JoinHorizontal(lipgloss.Left, badges...)

	lines := []string{nameLine, badgeLine}
	if showDescriptor {
		state := task.States()
		text := state.StateName()
		if d, ok := state.Descriptor().Get(); ok {
			text += ": " + d
		}
		lines = append(lines, s.Descriptor.Render(truncate(text, maxNameLen)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderCard is the exported version for testing
func RenderCard(task *domain.Task, priority int, isCursor bool, showDescriptor bool, width int, s *styles.Styles) string {
	return renderCard(task, priority, isCursor, showDescriptor, width, s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if n < 1 || len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
