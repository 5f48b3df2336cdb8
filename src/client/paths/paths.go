// Package paths resolves the CLI's configuration and log locations.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	appName = "vector"

	// EnvConfigDir overrides every other config directory source.
	EnvConfigDir = "VECTOR_CONFIG_DIR"

	configFileName      = "config.json"
	credentialsFileName = "credentials.json"
	logFileName         = "cli.log"
)

// ConfigDir returns the CLI config directory.
// Precedence: $VECTOR_CONFIG_DIR, $XDG_CONFIG_HOME/vector, then the
// platform config dir (~/.config/vector, %APPDATA%\vector, ...).
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// LogDir returns the CLI log directory
// Linux: ~/.local/state/vector/
// Windows: %LOCALAPPDATA%\vector\log\
func LogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "log")
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigFile returns the optional settings file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// CredentialsFile returns the stored token file path
func CredentialsFile() string {
	return filepath.Join(ConfigDir(), credentialsFileName)
}

// LogFile returns the CLI log file path
func LogFile() string {
	return filepath.Join(LogDir(), logFileName)
}

// EnsureDir creates dir with owner-only permissions, tightening them if the
// directory already existed.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	if err := os.Chmod(dir, 0700); err != nil {
		return fmt.Errorf("chmod dir %s: %w", dir, err)
	}
	return nil
}

// EnsureFile creates the parent directory of path.
// Must be called before creating any file under the config or log dirs.
func EnsureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return nil
}

// ResolveConfigPath resolves the --config flag to an absolute path.
// Relative names are taken from the config dir; a missing extension
// defaults to .json.
func ResolveConfigPath(configFlag string) string {
	if configFlag == "" {
		return ConfigFile()
	}

	configFlag = expandHome(configFlag)
	if !filepath.IsAbs(configFlag) {
		configFlag = filepath.Join(ConfigDir(), configFlag)
	}
	if filepath.Ext(configFlag) == "" {
		configFlag += ".json"
	}
	return configFlag
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}
