// Package terminal answers the few questions the CLI asks about its streams.
package terminal

import (
	"io"

	"golang.org/x/term"
)

// DefaultWidth is used when the width of a stream cannot be determined.
const DefaultWidth = 80

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether stream is attached to a terminal. Anything
// that is not an *os.File, such as a buffer in tests, is not a terminal.
func IsTerminal(stream any) bool {
	f, ok := stream.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of w, or DefaultWidth.
func Width(w io.Writer) int {
	f, ok := w.(fder)
	if !ok {
		return DefaultWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return DefaultWidth
	}
	return cols
}
