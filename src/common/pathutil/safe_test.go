package pathutil

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateSegment(t *testing.T) {
	tests := []struct {
		segment string
		wantErr error
	}{
		{"01HQ7Z8K9V", nil},
		{"site-123", nil},
		{"203.0.113.7", nil},
		{"a/b", nil},
		{"with space", nil},
		{"", ErrEmptySegment},
		{"   ", ErrEmptySegment},
		{".", ErrPathTraversal},
		{"..", ErrPathTraversal},
		{"bad\x00id", ErrInvalidPath},
		{"line\nbreak", ErrInvalidPath},
		{strings.Repeat("a", 257), ErrPathTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			err := ValidateSegment(tt.segment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSegment(%q) = %v, want %v", tt.segment, err, tt.wantErr)
			}
		})
	}
}

func TestEscapeSegment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"a/b", "a%2Fb"},
		{"a b", "a%20b"},
		{"example.com", "example.com"},
		{"50%", "50%25"},
		{"?x=1", "%3Fx=1"},
	}
	for _, tt := range tests {
		if got := EscapeSegment(tt.in); got != tt.want {
			t.Errorf("EscapeSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://api.example.com", []string{"api", "v1"}, "https://api.example.com/api/v1"},
		{"https://api.example.com/", []string{"sites"}, "https://api.example.com/sites"},
		{"http://127.0.0.1:8080/prefix//", []string{"a", "b%2Fc"}, "http://127.0.0.1:8080/prefix/a/b%2Fc"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("JoinURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestCleanFilePath(t *testing.T) {
	got, err := CleanFilePath("./dumps/../dumps/site.sql")
	if err != nil {
		t.Fatalf("CleanFilePath() error = %v", err)
	}
	if want := filepath.Join("dumps", "site.sql"); got != want {
		t.Errorf("CleanFilePath() = %q, want %q", got, want)
	}

	if _, err := CleanFilePath(""); !errors.Is(err, ErrEmptySegment) {
		t.Errorf("CleanFilePath(\"\") error = %v", err)
	}
	if _, err := CleanFilePath("a\x00b"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("CleanFilePath(NUL) error = %v", err)
	}
}
