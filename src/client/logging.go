package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/builtfast/vector-cli/src/client/cmd"
	"github.com/builtfast/vector-cli/src/client/paths"
)

const (
	defaultMaxSize  = 10 // MB
	defaultMaxFiles = 5
	maxAgeDays      = 30
)

// parseLevel maps debug, info, warn and error to slog levels. Anything
// else is warn.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func logPath(file string) string {
	if file == "" {
		return paths.LogFile()
	}
	if file == "~" || strings.HasPrefix(file, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, file[1:])
		}
	}
	return file
}

// rotatingWriter returns the lumberjack writer for the configured log file.
func rotatingWriter(s cmd.LogSettings) (*lumberjack.Logger, error) {
	path := logPath(s.File)
	if err := paths.EnsureFile(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	maxSize := s.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	maxFiles := s.MaxFiles
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}, nil
}

// newLogger writes JSON records to the rotating log file. With Verbose it
// writes text records at debug level to stderr instead.
func newLogger(s cmd.LogSettings, stderr io.Writer) (*slog.Logger, error) {
	if s.Verbose {
		return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})), nil
	}
	w, err := rotatingWriter(s)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(s.Level)})), nil
}
