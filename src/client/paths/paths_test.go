package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Tests for ConfigDir

func TestConfigDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv("XDG_CONFIG_HOME", "/should/not/be/used")

	if got := ConfigDir(); got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	want := filepath.Join("/tmp/xdg", "vector")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDirDefault(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir() returned empty string")
	}
	if filepath.Base(dir) != "vector" {
		t.Errorf("ConfigDir() = %q, should end in vector", dir)
	}
}

func TestConfigDirTildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv(EnvConfigDir, "~/vector-test")

	want := filepath.Join(home, "vector-test")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

// Tests for file locations

func TestFilesLiveInConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ConfigFile", ConfigFile(), filepath.Join(dir, "config.json")},
		{"CredentialsFile", CredentialsFile(), filepath.Join(dir, "credentials.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLogFile(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Setenv("XDG_STATE_HOME", "/tmp/state")
		if got, want := LogFile(), filepath.Join("/tmp/state", "vector", "cli.log"); got != want {
			t.Errorf("LogFile() = %q, want %q", got, want)
		}
	}

	if !strings.HasSuffix(LogFile(), "cli.log") {
		t.Errorf("LogFile() = %q, should end with cli.log", LogFile())
	}
}

// Tests for EnsureDir / EnsureFile

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() did not create a directory")
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0700 {
		t.Errorf("permissions = %o, want 0700", info.Mode().Perm())
	}
}

func TestEnsureDirTightensExisting(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not enforced on windows")
	}
	dir := filepath.Join(t.TempDir(), "loose")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, _ := os.Stat(dir)
	if info.Mode().Perm() != 0700 {
		t.Errorf("permissions = %o, want 0700", info.Mode().Perm())
	}
}

func TestEnsureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "file.json")

	if err := EnsureFile(path); err != nil {
		t.Fatalf("EnsureFile() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("EnsureFile() should not create the file itself")
	}
}

// Tests for ResolveConfigPath

func TestResolveConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	tests := []struct {
		flag string
		want string
	}{
		{"", filepath.Join(dir, "config.json")},
		{"work", filepath.Join(dir, "work.json")},
		{"work.json", filepath.Join(dir, "work.json")},
		{"/etc/vector/site.json", "/etc/vector/site.json"},
		{"/etc/vector/site", "/etc/vector/site.json"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := ResolveConfigPath(tt.flag); got != tt.want {
				t.Errorf("ResolveConfigPath(%q) = %q, want %q", tt.flag, got, tt.want)
			}
		})
	}
}
