package output

import (
	"strconv"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/builtfast/vector-cli/src/client/registry"
)

// keys splits a dotted path into jsonparser keys. "" selects the value itself.
func keys(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// lookup returns the value at path, or jsonparser.NotExist.
func lookup(data []byte, path string) ([]byte, jsonparser.ValueType) {
	if len(data) == 0 {
		return nil, jsonparser.NotExist
	}
	v, t, _, err := jsonparser.Get(data, keys(path)...)
	if err != nil {
		return nil, jsonparser.NotExist
	}
	return v, t
}

// cell projects one column out of a row element.
func cell(row []byte, col registry.Column) string {
	if col.Template != "" {
		return expand(col.Template, row, nil)
	}
	v, t := lookup(row, col.Path)
	return format(v, t, col.Format)
}

func format(v []byte, t jsonparser.ValueType, f registry.Format) string {
	switch t {
	case jsonparser.NotExist, jsonparser.Null:
		return ""
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil {
			return string(v)
		}
		return s
	case jsonparser.Boolean:
		b, _ := jsonparser.ParseBoolean(v)
		if f == registry.YesNo {
			if b {
				return "Yes"
			}
			return "No"
		}
		return strconv.FormatBool(b)
	case jsonparser.Array:
		var items []string
		_, _ = jsonparser.ArrayEach(v, func(item []byte, it jsonparser.ValueType, _ int, _ error) {
			items = append(items, format(item, it, registry.Text))
		})
		return strings.Join(items, ", ")
	case jsonparser.Object:
		switch f {
		case registry.Actor:
			for _, k := range []string{"token_name", "ip"} {
				if s, err := jsonparser.GetString(v, k); err == nil && s != "" {
					return s
				}
			}
			return ""
		case registry.Resource:
			typ, err := jsonparser.GetString(v, "type")
			if err != nil {
				return ""
			}
			if id, err := jsonparser.GetString(v, "id"); err == nil {
				return typ + ":" + id
			}
			return typ
		}
		return string(v)
	default:
		return string(v)
	}
}

// expand substitutes {path} and {path|fallback} placeholders. Paths are
// looked up in data first, then in vars.
func expand(tmpl string, data []byte, vars map[string]string) string {
	var sb strings.Builder
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			sb.WriteString(tmpl)
			break
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			sb.WriteString(tmpl)
			break
		}
		sb.WriteString(tmpl[:open])
		name := tmpl[open+1 : open+end]
		tmpl = tmpl[open+end+1:]

		fallback := ""
		if i := strings.IndexByte(name, '|'); i >= 0 {
			name, fallback = name[:i], name[i+1:]
		}
		val := resolve(name, data, vars)
		if val == "" {
			val = fallback
		}
		sb.WriteString(val)
	}
	return sb.String()
}

func resolve(name string, data []byte, vars map[string]string) string {
	if v, t := lookup(data, name); t != jsonparser.NotExist {
		if s := format(v, t, registry.Text); s != "" {
			return s
		}
	}
	return vars[name]
}
