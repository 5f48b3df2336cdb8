// Package output renders API responses and errors as tables or JSON.
package output

import "github.com/builtfast/vector-cli/src/common/terminal"

// Mode is the output format for one invocation.
type Mode int

const (
	Table Mode = iota
	JSON
)

func (m Mode) String() string {
	if m == JSON {
		return "json"
	}
	return "table"
}

// Explicit turns the --json and --no-json flags into an override.
// --json wins when both are given; nil means neither was.
func Explicit(jsonFlag, noJSONFlag bool) *bool {
	switch {
	case jsonFlag:
		v := true
		return &v
	case noJSONFlag:
		v := false
		return &v
	default:
		return nil
	}
}

// Resolve picks the mode: an explicit choice wins, otherwise a terminal
// gets a table and anything else gets JSON.
func Resolve(explicit *bool, stdoutIsTerminal bool) Mode {
	if explicit != nil {
		if *explicit {
			return JSON
		}
		return Table
	}
	if stdoutIsTerminal {
		return Table
	}
	return JSON
}

// Detector reports whether standard output is interactive.
type Detector interface {
	IsTerminal() bool
}

// StreamDetector checks a real stream.
type StreamDetector struct {
	Stream any
}

func (d StreamDetector) IsTerminal() bool {
	return terminal.IsTerminal(d.Stream)
}

// Fixed is a Detector with a predetermined answer.
type Fixed bool

func (f Fixed) IsTerminal() bool { return bool(f) }
