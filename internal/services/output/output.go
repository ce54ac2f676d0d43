// Package output writes indented, human-readable reports.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Console receives finished lines
type Console interface {
	Log(line string)
}

// StreamConsole writes lines to an io.Writer
type StreamConsole struct {
	w io.Writer
}

// NewStreamConsole creates a console over w
func NewStreamConsole(w io.Writer) *StreamConsole {
	return &StreamConsole{w: w}
}

// Log writes line followed by a newline
func (c *StreamConsole) Log(line string) {
	fmt.Fprintln(c.w, line)
}

// Writer prefixes every line with one tab per indentation level
type Writer struct {
	console Console
	indent  int
}

// NewWriter creates a writer over console
func NewWriter(console Console) *Writer {
	return &Writer{console: console}
}

// IncreaseIndent runs fn one level deeper. The level is restored even if fn
// panics.
func (w *Writer) IncreaseIndent(fn func()) {
	w.indent++
	defer func() {
		w.indent--
		if w.indent < 0 {
			w.indent = 0
		}
	}()
	fn()
}

// Indent returns the current indentation level
func (w *Writer) Indent() int {
	return w.indent
}

// Write formats a message and logs every line of it at the current level
func (w *Writer) Write(format string, args ...any) {
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}

	prefix := strings.Repeat("\t", w.indent)
	for _, line := range strings.Split(message, "\n") {
		w.console.Log(prefix + line)
	}
}
