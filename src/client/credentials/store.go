// Package credentials resolves and stores the API token.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/builtfast/vector-cli/src/client/api"
	"github.com/builtfast/vector-cli/src/client/paths"
)

// EnvToken overrides the stored token.
const EnvToken = "VECTOR_API_KEY"

// Source records where a resolved token came from.
type Source int

const (
	SourceNone Source = iota
	SourceFlag
	SourceEnv
	SourceFile
)

func (s Source) String() string {
	switch s {
	case SourceFlag:
		return "flag"
	case SourceEnv:
		return "environment"
	case SourceFile:
		return "credentials file"
	default:
		return "none"
	}
}

type fileFormat struct {
	APIKey string `json:"api_key,omitempty"`
}

// Store reads and writes the credentials file. The token itself is never
// logged or included in errors.
type Store struct {
	Path   string
	Getenv func(string) string
}

// NewStore returns a store for path. A nil getenv uses os.Getenv.
func NewStore(path string, getenv func(string) string) *Store {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Store{Path: path, Getenv: getenv}
}

// Resolve returns the token by precedence: flag, $VECTOR_API_KEY, then the
// credentials file. It returns api.ErrNotLoggedIn when none yields a token.
func (s *Store) Resolve(flagToken string) (string, Source, error) {
	if t := strings.TrimSpace(flagToken); t != "" {
		return t, SourceFlag, nil
	}
	if t := strings.TrimSpace(s.Getenv(EnvToken)); t != "" {
		return t, SourceEnv, nil
	}
	t, err := s.Load()
	if err != nil {
		return "", SourceNone, err
	}
	if t == "" {
		return "", SourceNone, api.ErrNotLoggedIn
	}
	return t, SourceFile, nil
}

// CorruptFileError reports a credentials file that is not valid JSON.
type CorruptFileError struct {
	Path string
	Err  error
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("credentials file %s is corrupt (%v); run 'vector auth login' to replace it", e.Path, e.Err)
}

func (e *CorruptFileError) Unwrap() error { return e.Err }

// Load returns the stored token, or "" when there is none.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credentials %s: %w", s.Path, err)
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return "", &CorruptFileError{Path: s.Path, Err: err}
	}
	return strings.TrimSpace(f.APIKey), nil
}

// Persist writes token to the credentials file with owner-only permissions,
// creating the directory if needed.
func (s *Store) Persist(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return &api.ValidationError{Field: "token", Message: "token cannot be empty"}
	}
	return s.write(fileFormat{APIKey: token})
}

// Clear removes the stored token.
func (s *Store) Clear() error {
	return s.write(fileFormat{})
}

func (s *Store) write(f fileFormat) error {
	if err := paths.EnsureDir(filepath.Dir(s.Path)); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	data = append(data, '\n')

	file, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	// O_CREATE leaves the mode of an existing file alone.
	if err := os.Chmod(s.Path, 0600); err != nil {
		return fmt.Errorf("chmod credentials: %w", err)
	}
	return nil
}
