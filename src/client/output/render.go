package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/buger/jsonparser"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/builtfast/vector-cli/src/client/registry"
)

// ErrInvalidJSON is returned when a successful response is not JSON.
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// FailedError reports a 2xx response whose body says the operation failed.
type FailedError struct {
	Message string
}

func (e *FailedError) Error() string { return e.Message }

// Renderer writes successful results to Out and failures to Err, both in
// the same Mode.
type Renderer struct {
	Out     io.Writer
	Err     io.Writer
	Mode    Mode
	Compact bool
	// Width caps table width. Zero means unlimited.
	Width int

	styles *lipgloss.Renderer
}

// Render writes body through shape. vars holds the invocation's positional
// arguments and field values for message placeholders.
func (r *Renderer) Render(body []byte, shape registry.Shape, vars map[string]string) error {
	if r.Mode == JSON {
		return r.writeJSON(body)
	}
	if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
		return ErrInvalidJSON
	}

	root, _ := lookup(body, shape.Root)
	if shape.Success != "" {
		if ok, err := jsonparser.GetBoolean(root, keys(shape.Success)...); err != nil || !ok {
			return &FailedError{Message: expand(shape.Failure, root, vars)}
		}
	}
	switch shape.Kind {
	case registry.ListShape:
		r.list(root, shape)
		r.listFooter(body, shape)
	case registry.ObjectShape:
		r.object(root, shape)
	case registry.MessageShape:
		fmt.Fprintln(r.Out, expand(shape.Message, root, vars))
	}
	if shape.Footer != "" {
		fmt.Fprintln(r.Out, expand(shape.Footer, root, vars))
	}
	return nil
}

// writeJSON passes the body through unchanged apart from whitespace, so
// keys keep the order the API sent them in.
func (r *Renderer) writeJSON(body []byte) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	var buf bytes.Buffer
	var err error
	if r.Compact {
		err = json.Compact(&buf, body)
	} else {
		err = json.Indent(&buf, body, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	buf.WriteByte('\n')
	_, err = r.Out.Write(buf.Bytes())
	return err
}

// Value writes v as JSON. Struct fields keep declaration order.
func (r *Renderer) Value(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.writeJSON(data)
}

// Message prints text in table mode or {"message": text} in JSON mode.
func (r *Renderer) Message(text string) error {
	if r.Mode == JSON {
		return r.Value(struct {
			Message string `json:"message"`
		}{text})
	}
	_, err := fmt.Fprintln(r.Out, text)
	return err
}

// KeyValue prints aligned "key  value" lines.
func (r *Renderer) KeyValue(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	key := r.style().NewStyle().Bold(true).Width(width)
	for _, p := range pairs {
		fmt.Fprintf(r.Out, "%s  %s\n", key.Render(p[0]), p[1])
	}
}

func (r *Renderer) list(root []byte, shape registry.Shape) {
	var rows [][]string
	_, _ = jsonparser.ArrayEach(root, func(elem []byte, _ jsonparser.ValueType, _ int, _ error) {
		row := make([]string, len(shape.Columns))
		for i, col := range shape.Columns {
			row[i] = cell(elem, col)
		}
		rows = append(rows, row)
	})
	if len(rows) == 0 {
		if shape.Empty != "" {
			fmt.Fprintln(r.Out, shape.Empty)
		}
		return
	}

	headers := make([]string, len(shape.Columns))
	for i, col := range shape.Columns {
		headers[i] = col.Header
	}
	fmt.Fprintln(r.Out, r.table(headers, rows))
}

func (r *Renderer) table(headers []string, rows [][]string) string {
	header := r.style().NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.style().NewStyle().Padding(0, 1)

	build := func() *table.Table {
		return table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(r.style().NewStyle()).
			Headers(headers...).
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return cellStyle
			})
	}

	out := build().String()
	if r.Width > 0 && lipgloss.Width(out) > r.Width {
		out = build().Width(r.Width).String()
	}
	return out
}

func (r *Renderer) listFooter(body []byte, shape registry.Shape) {
	if shape.Paginated {
		current, err1 := jsonparser.GetInt(body, "meta", "current_page")
		last, err2 := jsonparser.GetInt(body, "meta", "last_page")
		total, err3 := jsonparser.GetInt(body, "meta", "total")
		if err1 == nil && err2 == nil && err3 == nil && last > 1 {
			fmt.Fprintf(r.Out, "\nPage %d of %d (%d total)\n", current, last, total)
		}
	}
	if more := shape.More; more != nil {
		hasMore, err := jsonparser.GetBoolean(body, keys(more.HasMore)...)
		cursor, _ := jsonparser.GetString(body, keys(more.Cursor)...)
		if err == nil && hasMore && cursor != "" {
			fmt.Fprintf(r.Out, "\n"+more.Hint+"\n", cursor)
		}
	}
}

func (r *Renderer) object(root []byte, shape registry.Shape) {
	pairs := make([][2]string, 0, len(shape.Columns))
	for _, col := range shape.Columns {
		pairs = append(pairs, [2]string{col.Header, cell(root, col)})
	}
	r.KeyValue(pairs)
}

func (r *Renderer) style() *lipgloss.Renderer {
	if r.styles == nil {
		r.styles = lipgloss.NewRenderer(r.Out)
	}
	return r.styles
}
