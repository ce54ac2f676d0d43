// Package types contains shared types used across the application.
package types

// Mode represents the current editing mode of the board
type Mode int

const (
	ModeNormal Mode = iota
	// ModeInput is active while a new task name is being typed
	ModeInput
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInput:
		return "INPUT"
	default:
		return "UNKNOWN"
	}
}
