// Package app contains the interactive board model and its TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/walrus/internal/core/bucket"
	"github.com/riordanpawley/walrus/internal/domain"
	"github.com/riordanpawley/walrus/internal/types"
	"github.com/riordanpawley/walrus/internal/ui/board"
	"github.com/riordanpawley/walrus/internal/ui/statusbar"
	"github.com/riordanpawley/walrus/internal/ui/styles"
	"github.com/riordanpawley/walrus/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeInput  = types.ModeInput
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast

// Cursor is the board cursor
type Cursor = board.Cursor

// State names stamped by board actions
const (
	StateStarted = "Started"
	StateDone    = "Done"
)

const toastTTL = 3 * time.Second

// Options configures the board
type Options struct {
	ShowDescriptors bool
	// Now reads the time used for toast expiry. Defaults to time.Now.
	Now func() time.Time
}

// Model is the main application state
type Model struct {
	bucket  bucket.Bucket
	columns []board.Column
	cursor  Cursor
	mode    Mode

	input  textinput.Model
	toasts []Toast

	width  int
	height int

	styles *styles.Styles
	opts   Options
	logger *slog.Logger
}

type tickMsg time.Time

// New creates a board over b
func New(b bucket.Bucket, opts Options, logger *slog.Logger) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	input := textinput.New()
	input.Placeholder = "Task name @Size"
	input.Prompt = "New task: "
	input.CharLimit = 120

	return Model{
		bucket:  b,
		columns: board.Columns(b),
		mode:    ModeNormal,
		input:   input,
		styles:  styles.New(),
		opts:    opts,
		logger:  logger,
	}
}

// Init starts the toast expiry ticker
func (m Model) Init() tea.Cmd {
	return tickEvery(time.Second)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-2, 10)
		return m, nil

	case tickMsg:
		m.toasts = toast.Prune(m.toasts, m.opts.Now())
		return m, tickEvery(time.Second)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the board, the selected task's history, the status bar and
// any toasts
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footer := []string{m.renderHistory()}
	if m.mode == ModeInput {
		footer = append(footer, m.input.View())
	}
	info := fmt.Sprintf("%s · %d tasks", m.bucket.Name(), m.bucket.Len())
	footer = append(footer, statusbar.New(m.mode, m.width, m.styles).WithInfo(info).Render())

	footerView := lipgloss.JoinVertical(lipgloss.Left, footer...)
	// column headers and borders take four lines
	boardHeight := max(m.height-lipgloss.Height(footerView)-4, 1)

	boardView := board.Render(
		m.columns,
		m.cursor,
		board.Options{ShowDescriptors: m.opts.ShowDescriptors},
		m.styles,
		m.width,
		boardHeight,
	)

	view := lipgloss.JoinVertical(lipgloss.Left, boardView, footerView)

	if toastView := toast.New(m.styles).Render(m.toasts, m.width); toastView != "" {
		view = lipgloss.JoinVertical(lipgloss.Right, view, toastView)
	}

	return view
}

// renderHistory renders the state chain of the selected task on one line
func (m Model) renderHistory() string {
	task := m.cursor.Selected(m.columns)
	if task == nil {
		return m.styles.History.Render("No task selected")
	}

	history := task.States().History()
	names := make([]string, 0, len(history))
	for _, s := range history {
		names = append(names, s.StateName())
	}
	key := m.styles.TaskKey.Render(task.Key())
	line := fmt.Sprintf("%s [%s]: %s", task.Name(), key, strings.Join(names, " → "))
	return m.styles.History.Width(m.width).Render(line)
}

// refresh rebuilds the columns and keeps the cursor on task when given
func (m *Model) refresh(task *domain.Task) {
	m.columns = board.Columns(m.bucket)
	if task != nil {
		m.cursor = m.cursor.Follow(m.columns, task)
	}
	m.cursor = m.cursor.Clamp(m.columns)
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level types.ToastLevel, format string, args ...any) {
	m.toasts = append(m.toasts, types.NewToast(level, fmt.Sprintf(format, args...), m.opts.Now(), toastTTL))
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
