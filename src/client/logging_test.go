package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/builtfast/vector-cli/src/client/cmd"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"chatty", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogPathDefaultsToStateDir(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	if got, want := logPath(""), filepath.Join(state, "vector", "cli.log"); got != want {
		t.Errorf("logPath(\"\") = %q, want %q", got, want)
	}
	if got := logPath("/var/tmp/x.log"); got != "/var/tmp/x.log" {
		t.Errorf("logPath(abs) = %q", got)
	}
}

func TestRotatingWriterDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cli.log")
	w, err := rotatingWriter(cmd.LogSettings{File: path})
	if err != nil {
		t.Fatalf("rotatingWriter() error = %v", err)
	}
	if w.MaxSize != defaultMaxSize || w.MaxBackups != defaultMaxFiles || !w.Compress {
		t.Errorf("writer = %+v", w)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("log dir not created: %v", err)
	}
}

func TestNewLoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.log")
	logger, err := newLogger(cmd.LogSettings{File: path, Level: "info"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("request", "status", 200)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log has %d lines, want 1:\n%s", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "request" || rec["status"] != float64(200) {
		t.Errorf("record = %v", rec)
	}
}

func TestNewLoggerVerboseUsesStderr(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "cli.log")
	logger, err := newLogger(cmd.LogSettings{File: path, Verbose: true}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("retrying request", "attempt", 2)
	if !strings.Contains(stderr.String(), "retrying request") || !strings.Contains(stderr.String(), "attempt=2") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("verbose logging should not create the log file")
	}
}

func TestInitLoggingFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	var stderr bytes.Buffer
	logger := InitLogging(cmd.LogSettings{File: filepath.Join(blocker, "sub", "cli.log")}, &stderr)
	if logger == nil {
		t.Fatal("InitLogging() returned nil")
	}
	logger.Error("dropped")
	if !strings.Contains(stderr.String(), "Warning: could not initialize log file") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
