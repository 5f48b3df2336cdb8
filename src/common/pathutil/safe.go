// Package pathutil validates user-supplied values before they become URL
// path segments or local file paths.
package pathutil

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

var (
	ErrEmptySegment  = errors.New("must not be empty")
	ErrPathTraversal = errors.New("must not be . or ..")
	ErrInvalidPath   = errors.New("contains control characters")
	ErrPathTooLong   = errors.New("is too long")
)

const (
	maxSegmentLen = 256
	maxPathLen    = 4096
)

// ValidateSegment checks a value substituted into a single URL path segment.
// Slashes are allowed because EscapeSegment encodes them; dot segments are
// not, since servers and proxies resolve them after decoding.
func ValidateSegment(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmptySegment
	}
	if len(value) > maxSegmentLen {
		return ErrPathTooLong
	}
	if value == "." || value == ".." {
		return ErrPathTraversal
	}
	if strings.IndexFunc(value, unicode.IsControl) >= 0 {
		return ErrInvalidPath
	}
	return nil
}

// EscapeSegment percent-encodes value for use as one path segment.
func EscapeSegment(value string) string {
	return url.PathEscape(value)
}

// JoinURL appends already-escaped segments to base.
func JoinURL(base string, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(s)
	}
	return sb.String()
}

// CleanFilePath validates a local file path given on the command line.
func CleanFilePath(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptySegment
	}
	if len(input) > maxPathLen {
		return "", ErrPathTooLong
	}
	if strings.IndexFunc(input, unicode.IsControl) >= 0 {
		return "", ErrInvalidPath
	}
	return filepath.Clean(input), nil
}
