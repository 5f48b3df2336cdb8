package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.4.0", OS: "linux", Arch: "amd64"}
	if got, want := info.String(), "vector-cli 1.4.0 (linux/amd64)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInfoFull(t *testing.T) {
	full := Get().Full()
	for _, want := range []string{"Version:", "Commit:", "Build Date:", "Go Version:", "OS/Arch:"} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() should contain %q", want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "2.1.0"
	if got := UserAgent(); got != "vector-cli/2.1.0" {
		t.Errorf("UserAgent() = %q, want vector-cli/2.1.0", got)
	}
}

func TestCommitShort(t *testing.T) {
	orig := Commit
	defer func() { Commit = orig }()

	Commit = "0123456789abcdef"
	if got := CommitShort(); got != "0123456" {
		t.Errorf("CommitShort() = %q, want 0123456", got)
	}
	Commit = "abc"
	if got := CommitShort(); got != "abc" {
		t.Errorf("CommitShort() = %q, want abc", got)
	}
}

func TestIsDev(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		version string
		want    bool
	}{
		{"dev", true},
		{"", true},
		{"1.0.0-dev", true},
		{"1.0.0", false},
		{"v1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			Version = tt.version
			if got := IsDev(); got != tt.want {
				t.Errorf("IsDev() with %q = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}
