package app

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/walrus/internal/domain"
	"github.com/riordanpawley/walrus/internal/types"
)

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down":
		m.cursor.Task++
		m.cursor = m.cursor.Clamp(m.columns)
	case "k", "up":
		m.cursor.Task--
		m.cursor = m.cursor.Clamp(m.columns)
	case "l", "right":
		m.cursor.Column++
		m.cursor = m.cursor.Clamp(m.columns)
	case "h", "left":
		m.cursor.Column--
		m.cursor = m.cursor.Clamp(m.columns)

	case "s":
		return m.transition(StateStarted, domain.ActivityActive, domain.NoDescriptor)
	case "c":
		return m.transition(StateDone, domain.ActivityClosed, domain.NoDescriptor)
	case "r":
		return m.transition(domain.StateQueued, domain.ActivityNonActive, domain.Describe(m.bucket.Name()))

	case "n":
		m.mode = ModeInput
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd
	}

	return m, nil
}

// handleInputMode routes keys to the new task input
func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		name, size, err := parseNewTask(m.input.Value())
		if err != nil {
			m.addToast(types.ToastError, "%v", err)
			return m, nil
		}

		task := m.bucket.AddNew(name, size)
		m.logger.Debug("task added", "bucket", m.bucket.Name(), "task", task.Key())

		m.mode = ModeNormal
		m.input.Blur()
		m.refresh(task)
		m.addToast(types.ToastSuccess, "Added %s", task.Name())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// transition applies a state change to the selected task
func (m Model) transition(state string, activity domain.Activity, descriptor domain.Descriptor) (tea.Model, tea.Cmd) {
	task := m.cursor.Selected(m.columns)
	if task == nil {
		m.addToast(types.ToastWarning, "No task selected")
		return m, nil
	}
	if task.Activity() == activity {
		m.addToast(types.ToastWarning, "%s is already %s", task.Name(), activity)
		return m, nil
	}

	task.ChangeState(state, activity, descriptor)
	m.logger.Debug("task state changed", "task", task.Key(), "state", state, "activity", activity)

	m.refresh(task)
	m.addToast(types.ToastInfo, "%s: %s", task.Name(), state)
	return m, nil
}

// parseNewTask splits "name @Size" input. The size suffix is optional.
func parseNewTask(input string) (string, domain.Size, error) {
	input = strings.TrimSpace(input)
	name, sizeText := input, ""
	if i := strings.LastIndex(input, "@"); i >= 0 {
		name = strings.TrimSpace(input[:i])
		sizeText = strings.TrimSpace(input[i+1:])
	}

	if name == "" {
		return "", "", errors.New("task name is required")
	}
	size, err := domain.ParseSize(sizeText)
	if err != nil {
		return "", "", err
	}
	return name, size, nil
}
