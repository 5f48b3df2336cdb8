// Package registry holds the static table that maps CLI commands to API endpoints.
package registry

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldType is the declared type of a request field.
type FieldType int

const (
	String FieldType = iota
	Integer
	Bool
	Enum
	Date
	List
	File
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Bool:
		return "bool"
	case Enum:
		return "enum"
	case Date:
		return "date"
	case List:
		return "list"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Location says where a field is sent.
type Location int

const (
	// Auto resolves to Query for GET/DELETE and Body otherwise.
	Auto Location = iota
	Query
	Body
)

// Field declares one accepted request field.
type Field struct {
	// Name is the wire name. Dots nest body objects: "options.drop_tables".
	Name string
	// Flag overrides the CLI flag name derived from Name.
	Flag     string
	Type     FieldType
	In       Location
	Required bool
	Enum     []string
	Default  string
	// Invert sends the negation of a Bool flag, e.g. --no-secret → is_secret=false.
	Invert bool
	Usage  string
}

// FlagName returns the CLI flag for the field.
func (f Field) FlagName() string {
	if f.Flag != "" {
		return f.Flag
	}
	name := f.Name
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", "-")
}

// Segment is one part of a path template: a literal or a named placeholder.
type Segment struct {
	Literal string
	Param   string
}

// IsParam reports whether the segment is a placeholder.
func (s Segment) IsParam() bool { return s.Param != "" }

// ParsePath splits a template such as "/sites/{site_id}/ssh-keys" into segments.
func ParsePath(template string) ([]Segment, error) {
	if !strings.HasPrefix(template, "/") {
		return nil, fmt.Errorf("path %q must start with /", template)
	}
	var segs []Segment
	for _, part := range strings.Split(strings.Trim(template, "/"), "/") {
		switch {
		case part == "":
			return nil, fmt.Errorf("path %q has an empty segment", template)
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name := part[1 : len(part)-1]
			if name == "" || strings.ContainsAny(name, "{}") {
				return nil, fmt.Errorf("path %q has a malformed placeholder %q", template, part)
			}
			segs = append(segs, Segment{Param: name})
		case strings.ContainsAny(part, "{}"):
			return nil, fmt.Errorf("path %q has a malformed placeholder %q", template, part)
		default:
			segs = append(segs, Segment{Literal: part})
		}
	}
	return segs, nil
}

// Descriptor describes one (noun, verb) command and the request it makes.
type Descriptor struct {
	Noun   string
	Verb   string
	Short  string
	Method string
	Path   string
	// Args are the positional arguments, in the order the user types them.
	// They must equal the Path placeholders exactly.
	Args   []string
	Fields []Field
	Shape  string
	// Anonymous requests carry no Authorization header.
	Anonymous bool
	// Confirm commands ask before running unless --force is given.
	Confirm bool

	segments []Segment
}

// Command returns "noun verb" as typed on the command line.
func (d *Descriptor) Command() string {
	if d.Verb == "" {
		return d.Noun
	}
	return d.Noun + " " + d.Verb
}

// Segments returns the parsed path template. Only valid after registry.New.
func (d *Descriptor) Segments() []Segment { return d.segments }

// Field returns the declared field with the given wire name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Location returns where f is sent for this descriptor.
func (d *Descriptor) Location(f Field) Location {
	if f.In != Auto {
		return f.In
	}
	if d.HasBody() {
		return Body
	}
	return Query
}

// HasBody reports whether the method carries a request body.
func (d *Descriptor) HasBody() bool {
	switch d.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// Multipart reports whether the request is sent as multipart/form-data.
func (d *Descriptor) Multipart() bool {
	for _, f := range d.Fields {
		if f.Type == File {
			return true
		}
	}
	return false
}

// Idempotent reports whether repeating the request is safe by HTTP semantics.
func (d *Descriptor) Idempotent() bool {
	switch d.Method {
	case http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodHead:
		return true
	}
	return false
}
