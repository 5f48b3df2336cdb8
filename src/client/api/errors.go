package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
)

// Process exit codes. Scripts depend on these values.
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitAuth       = 2
	ExitValidation = 3
	ExitNotFound   = 4
	ExitNetwork    = 5
)

// Kind is the stable error taxonomy every failure is reduced to.
type Kind int

const (
	KindNone Kind = iota
	KindGeneral
	KindUnknownCommand
	KindValidation
	KindAuthentication
	KindNotFound
	KindNetworkOrServer
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindGeneral:
		return "general"
	case KindUnknownCommand:
		return "unknown_command"
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindNetworkOrServer:
		return "network_or_server"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindNone:
		return ExitSuccess
	case KindAuthentication:
		return ExitAuth
	case KindValidation:
		return ExitValidation
	case KindNotFound:
		return ExitNotFound
	case KindNetworkOrServer:
		return ExitNetwork
	default:
		return ExitGeneral
	}
}

// Classified is implemented by every error type in this package.
type Classified interface {
	error
	Kind() Kind
}

// UnknownCommandError reports a noun or verb missing from the registry.
type UnknownCommandError struct {
	Command     string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Command)
}

func (e *UnknownCommandError) Kind() Kind { return KindUnknownCommand }

// ValidationError is a local argument problem found before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Kind() Kind { return KindValidation }

// Validationf builds a ValidationError for field.
func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AuthError reports that no token could be resolved for a command that needs one.
type AuthError struct {
	Message string
}

// ErrNotLoggedIn is returned when no token source yields a token.
var ErrNotLoggedIn = &AuthError{Message: "Not logged in. Run 'vector auth login' to authenticate."}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Kind() Kind { return KindAuthentication }

// FieldError holds the server's messages for one request field.
type FieldError struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	kind    Kind
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	var prefix string
	switch {
	case e.Status == http.StatusUnauthorized:
		prefix = "Authentication failed"
	case e.Status == http.StatusForbidden:
		prefix = "Access denied"
	case e.kind == KindNotFound:
		prefix = "Not found"
	case e.kind == KindValidation:
		prefix = "Validation failed"
	case e.kind == KindNetworkOrServer:
		prefix = "Server error"
	default:
		return e.Message
	}
	return prefix + ": " + e.Message
}

func (e *APIError) Kind() Kind { return e.kind }

// TransportError is a failure to get any HTTP response (DNS, connect, TLS, timeout).
type TransportError struct {
	Op      string
	URL     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("Network error: %s %s: request timed out", e.Op, e.URL)
	}
	return fmt.Sprintf("Network error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Kind() Kind { return KindNetworkOrServer }

// StatusKind maps an HTTP status to its error kind. 2xx maps to KindNone.
func StatusKind(status int) Kind {
	switch {
	case status >= 200 && status < 300:
		return KindNone
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuthentication
	case status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindNetworkOrServer
	default:
		return KindGeneral
	}
}

// Classify reduces a transport outcome to a kind and exit code.
// Exactly one of resp and err is expected to be non-nil.
func Classify(resp *Response, err error) (Kind, int) {
	if err != nil {
		k := KindOf(err)
		return k, k.ExitCode()
	}
	if resp == nil {
		return KindGeneral, ExitGeneral
	}
	k := StatusKind(resp.Status)
	return k, k.ExitCode()
}

// KindOf returns the kind carried by err, or KindGeneral.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var c Classified
	if errors.As(err, &c) {
		return c.Kind()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetworkOrServer
	}
	return KindGeneral
}

// ExitCode maps any error to its process exit code.
func ExitCode(err error) int {
	return KindOf(err).ExitCode()
}

// NewAPIError builds the error for a non-2xx response, keeping the server's
// message and field errors in the order the body lists them.
func NewAPIError(resp *Response) *APIError {
	e := &APIError{
		kind:   StatusKind(resp.Status),
		Status: resp.Status,
	}
	if e.kind == KindNone {
		e.kind = KindGeneral
	}

	body := resp.Body
	if msg, err := jsonparser.GetString(body, "message"); err == nil {
		e.Message = msg
	}
	_ = jsonparser.ObjectEach(body, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		fe := FieldError{Field: string(key)}
		switch dataType {
		case jsonparser.Array:
			_, _ = jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
				if t == jsonparser.String {
					if s, err := jsonparser.ParseString(v); err == nil {
						fe.Messages = append(fe.Messages, s)
						return
					}
				}
				fe.Messages = append(fe.Messages, string(v))
			})
		case jsonparser.String:
			if s, err := jsonparser.ParseString(value); err == nil {
				fe.Messages = append(fe.Messages, s)
			}
		default:
			fe.Messages = append(fe.Messages, string(value))
		}
		e.Fields = append(e.Fields, fe)
		return nil
	}, "errors")

	if e.Message == "" {
		e.Message = fallbackMessage(resp, len(e.Fields) > 0)
	}
	return e
}

func fallbackMessage(resp *Response, hasFields bool) string {
	if len(resp.Body) > 0 && !jsonLike(resp.Body) {
		return strings.TrimSpace(string(resp.Body))
	}
	if hasFields {
		return "The given data was invalid."
	}
	if text := http.StatusText(resp.Status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", resp.Status)
}

func jsonLike(b []byte) bool {
	s := strings.TrimSpace(string(b))
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}
