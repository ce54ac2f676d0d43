package statusbar

import "github.com/riordanpawley/walrus/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: columns  j/k: tasks  s: start  c: close  r: requeue  n: new  q: quit"
	case types.ModeInput:
		return "Type a task name  Enter: add  Esc: cancel"
	default:
		return ""
	}
}
