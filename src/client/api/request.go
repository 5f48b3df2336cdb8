package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/builtfast/vector-cli/src/client/registry"
	"github.com/builtfast/vector-cli/src/common/pathutil"
	"github.com/builtfast/vector-cli/src/common/version"
)

// MaxUploadSize is the largest file accepted for a direct upload.
const MaxUploadSize = 50 << 20

// Fields holds user-supplied field values keyed by wire name. Values are
// the raw strings typed on the command line.
type Fields map[string][]string

// Set replaces the values for name.
func (f Fields) Set(name string, values ...string) {
	f[name] = values
}

// Builder validates user input against a descriptor and builds the request.
type Builder struct {
	UserAgent string
	// NewID generates request ids. Defaults to uuid.NewString.
	NewID func() string
}

// NewBuilder returns a builder using the binary's User-Agent.
func NewBuilder() *Builder {
	return &Builder{UserAgent: version.UserAgent(), NewID: uuid.NewString}
}

// Build validates pathArgs and fields and returns a ready-to-send request.
// Every failure is a *ValidationError, except a missing token for an
// authenticated descriptor, which is ErrNotLoggedIn and is only reported
// once the input itself is valid.
func (b *Builder) Build(d *registry.Descriptor, pathArgs []string, fields Fields, token, baseURL string) (*Request, error) {
	if len(pathArgs) != len(d.Args) {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"%s expects %d argument(s) <%s>, got %d",
			d.Command(), len(d.Args), strings.Join(d.Args, "> <"), len(pathArgs))}
	}
	endpoint, err := resolveURL(d, pathArgs, baseURL)
	if err != nil {
		return nil, err
	}

	values, err := checkFields(d, fields)
	if err != nil {
		return nil, err
	}
	if !d.Anonymous && strings.TrimSpace(token) == "" {
		return nil, ErrNotLoggedIn
	}

	query := url.Values{}
	body := map[string]any{}
	form := map[string]string{}
	var upload *registry.Field

	for _, f := range d.Fields {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		switch {
		case f.Type == registry.File:
			upload = &f
		case d.Location(f) == registry.Query:
			query.Set(f.Name, queryString(v))
		case d.Multipart():
			form[f.Name] = queryString(v)
		default:
			setNested(body, f.Name, v)
		}
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req := &Request{
		Method:     d.Method,
		URL:        endpoint,
		Header:     http.Header{},
		Idempotent: d.Idempotent(),
	}
	req.ID = b.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", b.userAgent())
	req.Header.Set(HeaderRequestID, req.ID)
	if !d.Anonymous {
		req.Header.Set(HeaderAuth, "Bearer "+strings.TrimSpace(token))
	}

	switch {
	case upload != nil:
		data, contentType, err := multipartBody(upload.Name, values[upload.Name].(string), form)
		if err != nil {
			return nil, err
		}
		req.Body = data
		req.Header.Set("Content-Type", contentType)
	case d.HasBody() && len(body) > 0:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		req.Body = data
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (b *Builder) newID() string {
	if b.NewID != nil {
		return b.NewID()
	}
	return uuid.NewString()
}

func (b *Builder) userAgent() string {
	if b.UserAgent != "" {
		return b.UserAgent
	}
	return version.UserAgent()
}

func resolveURL(d *registry.Descriptor, pathArgs []string, baseURL string) (string, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return "", Validationf("api-url", "%q is not an http(s) URL", baseURL)
	}

	segs := make([]string, 0, len(d.Segments()))
	argIdx := 0
	for _, s := range d.Segments() {
		if !s.IsParam() {
			segs = append(segs, s.Literal)
			continue
		}
		v := pathArgs[argIdx]
		argIdx++
		if err := pathutil.ValidateSegment(v); err != nil {
			return "", Validationf(s.Param, "%v", err)
		}
		segs = append(segs, pathutil.EscapeSegment(v))
	}
	return pathutil.JoinURL(base.Scheme+"://"+base.Host+base.Path, segs...), nil
}

// checkFields rejects unknown and missing fields, applies defaults and
// converts each value to its typed form.
func checkFields(d *registry.Descriptor, fields Fields) (map[string]any, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := d.Field(name); !ok {
			return nil, Validationf(name, "unknown field for %s", d.Command())
		}
	}

	out := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		raw, present := fields[f.Name]
		if present && len(raw) == 0 {
			present = false
		}
		if !present {
			if f.Required {
				return nil, Validationf("--"+f.FlagName(), "is required")
			}
			if f.Default == "" {
				continue
			}
			raw = []string{f.Default}
		}
		v, err := convert(f, raw)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

func convert(f registry.Field, raw []string) (any, error) {
	flag := "--" + f.FlagName()
	last := strings.TrimSpace(raw[len(raw)-1])

	switch f.Type {
	case registry.List:
		var items []string
		for _, r := range raw {
			for _, item := range strings.Split(r, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
		}
		if f.Required && len(items) == 0 {
			return nil, Validationf(flag, "needs at least one value")
		}
		return items, nil
	case registry.Integer:
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil {
			return nil, Validationf(flag, "%q is not an integer", last)
		}
		return n, nil
	case registry.Bool:
		b, err := strconv.ParseBool(last)
		if err != nil {
			return nil, Validationf(flag, "%q is not true or false", last)
		}
		if f.Invert {
			b = !b
		}
		return b, nil
	case registry.Enum:
		if !slices.Contains(f.Enum, last) {
			return nil, Validationf(flag, "%q is not one of %s", last, strings.Join(f.Enum, ", "))
		}
		return last, nil
	case registry.Date:
		if !isISODate(last) {
			return nil, Validationf(flag, "%q is not an ISO 8601 date (YYYY-MM-DD or RFC 3339)", last)
		}
		return last, nil
	case registry.File:
		path, err := pathutil.CleanFilePath(last)
		if err != nil {
			return nil, Validationf(flag, "%v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, Validationf(flag, "cannot read %s: %v", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil, Validationf(flag, "%s is not a regular file", path)
		}
		if info.Size() > MaxUploadSize {
			return nil, Validationf(flag, "%s is larger than 50MB; use import-session for large files", path)
		}
		return path, nil
	default:
		if f.Required && last == "" {
			return nil, Validationf(flag, "must not be empty")
		}
		return raw[len(raw)-1], nil
	}
}

func isISODate(s string) bool {
	for _, layout := range []string{time.DateOnly, time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func queryString(v any) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ",")
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// setNested stores v under a dotted name, creating intermediate objects.
func setNested(body map[string]any, name string, v any) {
	parts := strings.Split(name, ".")
	m := body
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

func multipartBody(field, path string, form map[string]string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", Validationf("--"+field, "cannot read %s: %v", path, err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, form[k]); err != nil {
			return nil, "", fmt.Errorf("encode form field %s: %w", k, err)
		}
	}

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filepath.Base(path)))
	h.Set("Content-Type", "application/octet-stream")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
