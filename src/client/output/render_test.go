package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/builtfast/vector-cli/src/client/api"
	"github.com/builtfast/vector-cli/src/client/registry"
)

var siteList = registry.Shape{
	Name: "sites", Kind: registry.ListShape, Root: "data", Paginated: true, Empty: "No sites found.",
	Columns: []registry.Column{
		{Path: "id", Header: "ID"},
		{Path: "status", Header: "Status"},
		{Path: "tags", Header: "Tags", Format: registry.Join},
		{Path: "is_production", Header: "Production", Format: registry.YesNo},
		{Path: "owner.name", Header: "Owner"},
	},
}

func newRenderer(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Renderer{Out: &out, Err: &errOut, Mode: mode}, &out, &errOut
}

func defaultShape(t *testing.T, name string) registry.Shape {
	t.Helper()
	reg, err := registry.Default()
	if err != nil {
		t.Fatal(err)
	}
	s, ok := reg.Shape(name)
	if !ok {
		t.Fatalf("no shape %q", name)
	}
	return s
}

func TestRenderTableColumns(t *testing.T) {
	body := `{"data":[
		{"id":"s1","status":"active","tags":["a","b"],"is_production":true,"owner":{"name":"Ann"},"extra":"hidden"},
		{"id":"s2","status":"pending","is_production":false}
	]}`
	r, out, _ := newRenderer(Table)
	if err := r.Render([]byte(body), siteList, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := out.String()

	for _, want := range []string{"ID", "Status", "Tags", "Production", "Owner", "s1", "active", "a, b", "Yes", "Ann", "s2", "No"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("undeclared field rendered:\n%s", got)
	}
	if strings.Index(got, "ID") > strings.Index(got, "Status") || strings.Index(got, "Status") > strings.Index(got, "Owner") {
		t.Errorf("headers out of declared order:\n%s", got)
	}
	if strings.Contains(got, "Page") {
		t.Errorf("single page should have no footer:\n%s", got)
	}
}

func TestRenderTableStableUnderKeyOrder(t *testing.T) {
	a := `{"data":[{"id":"s1","status":"active","tags":["x"],"owner":{"name":"Ann"}}],"meta":{"current_page":1,"last_page":2,"total":20}}`
	b := `{"meta":{"total":20,"last_page":2,"current_page":1},"data":[{"owner":{"name":"Ann"},"tags":["x"],"status":"active","id":"s1"}]}`

	r1, out1, _ := newRenderer(Table)
	r2, out2, _ := newRenderer(Table)
	if err := r1.Render([]byte(a), siteList, nil); err != nil {
		t.Fatal(err)
	}
	if err := r2.Render([]byte(b), siteList, nil); err != nil {
		t.Fatal(err)
	}
	if out1.String() != out2.String() {
		t.Errorf("output differs under key reordering:\n%s\nvs\n%s", out1, out2)
	}
}

func TestRenderPagination(t *testing.T) {
	body := `{"data":[{"id":"s1"}],"meta":{"current_page":2,"last_page":5,"total":73}}`
	r, out, _ := newRenderer(Table)
	if err := r.Render([]byte(body), siteList, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Page 2 of 5 (73 total)") {
		t.Errorf("missing pagination footer:\n%s", out)
	}
}

func TestRenderEmptyList(t *testing.T) {
	for _, body := range []string{`{"data":[]}`, `{}`, ``} {
		r, out, _ := newRenderer(Table)
		if err := r.Render([]byte(body), siteList, nil); err != nil {
			t.Fatalf("Render(%q) error = %v", body, err)
		}
		if strings.TrimSpace(out.String()) != "No sites found." {
			t.Errorf("Render(%q) = %q", body, out)
		}
	}
}

func TestRenderObject(t *testing.T) {
	shape := registry.Shape{Name: "site", Kind: registry.ObjectShape, Root: "data", Columns: []registry.Column{
		{Path: "id", Header: "ID"},
		{Path: "dev_domain", Header: "Dev Domain"},
		{Path: "missing", Header: "Missing"},
	}}
	r, out, _ := newRenderer(Table)
	if err := r.Render([]byte(`{"data":{"dev_domain":"x.vector.test","id":"s1"}}`), shape, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.HasSuffix(lines[0], "s1") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Dev Domain  x.vector.test") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if strings.TrimSpace(lines[2]) != "Missing" {
		t.Errorf("missing value should render empty, got %q", lines[2])
	}
}

func TestRenderMessage(t *testing.T) {
	tests := []struct {
		name  string
		shape string
		body  string
		vars  map[string]string
		want  string
	}{
		{"body fields", "site-created", `{"data":{"id":"s9","status":"pending"}}`, nil, "Site created: s9 (pending)"},
		{"invocation vars", "blocked-ip-added", `{"data":{}}`, map[string]string{"ip": "203.0.113.7"}, "IP 203.0.113.7 added to blocklist."},
		{"fallback", "ssl-nudged", `{}`, nil, "SSL provisioning nudge sent."},
		{"server message", "ssl-nudged", `{"message":"Provisioning retried."}`, nil, "Provisioning retried."},
		{"numeric fallback", "db-imported", `{"data":{}}`, nil, "Database imported successfully (0ms)."},
		{"empty body", "site-deleted", ``, nil, "Site deleted successfully."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, _ := newRenderer(Table)
			if err := r.Render([]byte(tt.body), defaultShape(t, tt.shape), tt.vars); err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTemplatesAndFooter(t *testing.T) {
	body := `{"data":[{"id":"r1","name":"burst","configuration":{"request_count":100,"timeframe":60,"block_time":300}}]}`
	r, out, _ := newRenderer(Table)
	if err := r.Render([]byte(body), defaultShape(t, "rate-limits"), nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "100/60s") || !strings.Contains(out.String(), "300s") {
		t.Errorf("templated columns missing:\n%s", out)
	}

	r, out, _ = newRenderer(Table)
	if err := r.Render([]byte(`{"data":{"id":"k1","name":"ci","token":"secret-once"}}`), defaultShape(t, "api-key-created"), nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "won't be shown again") {
		t.Errorf("footer missing:\n%s", out)
	}
}

func TestRenderCursorHint(t *testing.T) {
	body := `{"data":{"logs":{"tables":[{"rows":[["2024-01-01T00:00:00Z","boot","info"]]}]},"has_more":true,"cursor":"abc123"}}`
	r, out, _ := newRenderer(Table)
	if err := r.Render([]byte(body), defaultShape(t, "site-logs"), nil); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "boot") {
		t.Errorf("row missing:\n%s", got)
	}
	if !strings.Contains(got, "--cursor abc123") {
		t.Errorf("cursor hint missing:\n%s", got)
	}
}

func TestRenderSuccessCheck(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOut string
		wantErr string
	}{
		{"succeeded", `{"data":{"success":true,"duration_ms":120}}`, "Database imported successfully (120ms).\n", ""},
		{"failed", `{"data":{"success":false,"error":"syntax error at line 1"}}`, "", "syntax error at line 1"},
		{"failed without reason", `{"data":{"success":false}}`, "", "Import failed"},
		{"no flag", `{"data":{}}`, "", "Import failed"},
	}
	shape := defaultShape(t, "db-imported")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, _ := newRenderer(Table)
			err := r.Render([]byte(tt.body), shape, nil)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Render() error = %v", err)
				}
			} else {
				var failed *FailedError
				if !errors.As(err, &failed) || failed.Message != tt.wantErr {
					t.Fatalf("Render() error = %v, want %q", err, tt.wantErr)
				}
				if api.ExitCode(err) != api.ExitGeneral {
					t.Errorf("exit code = %d, want %d", api.ExitCode(err), api.ExitGeneral)
				}
			}
			if out.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestRenderJSONPassThrough(t *testing.T) {
	body := `{"zeta":1,"alpha":{"b":2,"a":[1,2]},"data":[]}`

	r, out, _ := newRenderer(JSON)
	if err := r.Render([]byte(body), siteList, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Index(out.String(), "zeta") > strings.Index(out.String(), "alpha") {
		t.Errorf("key order changed:\n%s", out)
	}
	var a, b any
	if err := json.Unmarshal(out.Bytes(), &a); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	_ = json.Unmarshal([]byte(body), &b)
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if !bytes.Equal(ja, jb) {
		t.Errorf("JSON output changed the value: %s vs %s", ja, jb)
	}

	r, out, _ = newRenderer(JSON)
	r.Compact = true
	if err := r.Render([]byte(body), siteList, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != body {
		t.Errorf("compact = %s, want %s", got, body)
	}
}

func TestRenderJSONEmptyAndInvalid(t *testing.T) {
	r, out, _ := newRenderer(JSON)
	if err := r.Render(nil, siteList, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "{}" {
		t.Errorf("empty body = %q, want {}", out)
	}

	r, _, _ = newRenderer(JSON)
	if err := r.Render([]byte("<html>"), siteList, nil); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("Render(html) error = %v", err)
	}
	r, _, _ = newRenderer(Table)
	if err := r.Render([]byte("<html>"), siteList, nil); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("Render(html) table error = %v", err)
	}
}

func TestMessageModes(t *testing.T) {
	r, out, _ := newRenderer(JSON)
	_ = r.Message("Logged out successfully.")
	if strings.TrimSpace(out.String()) != "{\n  \"message\": \"Logged out successfully.\"\n}" {
		t.Errorf("JSON message = %q", out)
	}

	r, out, _ = newRenderer(Table)
	_ = r.Message("Logged out successfully.")
	if out.String() != "Logged out successfully.\n" {
		t.Errorf("table message = %q", out)
	}
}

func TestErrorTableMode(t *testing.T) {
	apiErr := api.NewAPIError(&api.Response{
		Status: 422,
		Body:   []byte(`{"message":"The given data was invalid.","errors":{"name":["The name field is required."],"url":["The url must be valid."]}}`),
	})
	r, out, errOut := newRenderer(Table)
	r.Error(apiErr)

	if out.Len() != 0 {
		t.Errorf("error written to stdout: %q", out)
	}
	want := "Error: Validation failed: The given data was invalid.\n  name: The name field is required.\n  url: The url must be valid.\n"
	if errOut.String() != want {
		t.Errorf("stderr = %q, want %q", errOut, want)
	}
}

func TestErrorJSONMode(t *testing.T) {
	apiErr := api.NewAPIError(&api.Response{
		Status: 422,
		Body:   []byte(`{"message":"Invalid.","errors":{"zeta":["z"],"alpha":["a"]}}`),
	})
	r, _, errOut := newRenderer(JSON)
	r.Error(apiErr)

	var got struct {
		Error struct {
			Kind    string              `json:"kind"`
			Message string              `json:"message"`
			Status  int                 `json:"status"`
			Errors  map[string][]string `json:"errors"`
		} `json:"error"`
	}
	if err := json.Unmarshal(errOut.Bytes(), &got); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, errOut)
	}
	if got.Error.Kind != "validation" || got.Error.Status != 422 || got.Error.Errors["alpha"][0] != "a" {
		t.Errorf("error = %+v", got.Error)
	}
	if strings.Index(errOut.String(), "zeta") > strings.Index(errOut.String(), "alpha") {
		t.Errorf("field order not preserved:\n%s", errOut)
	}
}

func TestErrorSuggestions(t *testing.T) {
	r, _, errOut := newRenderer(Table)
	r.Error(&api.UnknownCommandError{Command: "stie", Suggestions: []string{"site"}})
	if !strings.Contains(errOut.String(), "Did you mean this?\n\tsite") {
		t.Errorf("stderr = %q", errOut)
	}
}
