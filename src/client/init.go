// Package main is the vector command.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/builtfast/vector-cli/src/client/cmd"
	"github.com/builtfast/vector-cli/src/client/registry"
)

// newApp wires the process streams and the built-in registry. A broken
// registry is a programming error and stops the process before any command
// runs.
func newApp() *cmd.App {
	reg, err := registry.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return &cmd.App{
		Registry: reg,
		In:       os.Stdin,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Logging: func(s cmd.LogSettings) *slog.Logger {
			return InitLogging(s, os.Stderr)
		},
	}
}

// InitLogging returns the diagnostic logger for one invocation. A log file
// that cannot be opened is reported on stderr and logging is discarded; it
// never fails the command.
func InitLogging(s cmd.LogSettings, stderr io.Writer) *slog.Logger {
	logger, err := newLogger(s, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: could not initialize log file: %v\n", err)
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
