package registry

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"
)

// ReservedFlags are global flags no descriptor field may shadow.
var ReservedFlags = []string{
	"json", "no-json", "compact", "token", "api-url", "timeout",
	"verbose", "config", "force", "help",
}

type key struct{ noun, verb string }

// Registry is the immutable command table. It is never mutated after New
// returns, so it is shared without locking.
type Registry struct {
	byKey  map[key]*Descriptor
	order  []*Descriptor
	shapes map[string]Shape
	nouns  []string
}

// New validates shapes and descriptors and builds the registry. Any
// inconsistency is reported together so a broken table fails at startup.
func New(shapes []Shape, descs []Descriptor) (*Registry, error) {
	r := &Registry{
		byKey:  make(map[key]*Descriptor, len(descs)),
		shapes: make(map[string]Shape, len(shapes)),
	}

	var errs []error
	for _, s := range shapes {
		if s.Name == "" {
			errs = append(errs, errors.New("shape with empty name"))
			continue
		}
		if _, dup := r.shapes[s.Name]; dup {
			errs = append(errs, fmt.Errorf("shape %q declared twice", s.Name))
			continue
		}
		if s.Kind != MessageShape && len(s.Columns) == 0 {
			errs = append(errs, fmt.Errorf("shape %q has no columns", s.Name))
		}
		if s.Success != "" && s.Failure == "" {
			errs = append(errs, fmt.Errorf("shape %q checks success without a failure message", s.Name))
		}
		r.shapes[s.Name] = s
	}

	nouns := map[string]bool{}
	for i := range descs {
		d := descs[i]
		if err := r.check(&d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.Command(), err))
			continue
		}
		k := key{d.Noun, d.Verb}
		if _, dup := r.byKey[k]; dup {
			errs = append(errs, fmt.Errorf("%s: declared twice", d.Command()))
			continue
		}
		r.byKey[k] = &d
		r.order = append(r.order, &d)
		nouns[d.Noun] = true
	}

	// "site ssh-key" cannot be both a noun and a site verb.
	for _, d := range r.order {
		if d.Verb != "" && nouns[d.Noun+" "+d.Verb] {
			errs = append(errs, fmt.Errorf("%s: verb collides with noun %q", d.Command(), d.Noun+" "+d.Verb))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid endpoint registry: %w", errors.Join(errs...))
	}

	for n := range nouns {
		r.nouns = append(r.nouns, n)
	}
	sort.Strings(r.nouns)
	return r, nil
}

func (r *Registry) check(d *Descriptor) error {
	if d.Noun == "" {
		return errors.New("empty noun")
	}
	switch d.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return fmt.Errorf("unsupported method %q", d.Method)
	}

	segs, err := ParsePath(d.Path)
	if err != nil {
		return err
	}
	var params []string
	for _, s := range segs {
		if s.IsParam() {
			if slices.Contains(params, s.Param) {
				return fmt.Errorf("placeholder {%s} appears twice", s.Param)
			}
			params = append(params, s.Param)
		}
	}
	if !slices.Equal(params, d.Args) {
		return fmt.Errorf("placeholders %v do not match positional args %v", params, d.Args)
	}
	d.segments = segs

	if _, ok := r.shapes[d.Shape]; !ok {
		return fmt.Errorf("unknown shape %q", d.Shape)
	}

	names := map[string]bool{}
	flags := map[string]bool{}
	for _, f := range d.Fields {
		if err := checkField(d, f); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		if names[f.Name] {
			return fmt.Errorf("field %q declared twice", f.Name)
		}
		names[f.Name] = true
		flag := f.FlagName()
		if flags[flag] || slices.Contains(ReservedFlags, flag) {
			return fmt.Errorf("flag --%s is already taken", flag)
		}
		flags[flag] = true
	}
	return nil
}

func checkField(d *Descriptor, f Field) error {
	if f.Name == "" || strings.HasPrefix(f.Name, ".") || strings.HasSuffix(f.Name, ".") {
		return errors.New("malformed name")
	}
	if f.Type == Enum {
		if len(f.Enum) == 0 {
			return errors.New("enum without values")
		}
		if f.Default != "" && !slices.Contains(f.Enum, f.Default) {
			return fmt.Errorf("default %q is not an allowed value", f.Default)
		}
	}
	if f.Invert && f.Type != Bool {
		return errors.New("only bool fields can be inverted")
	}
	loc := d.Location(f)
	if strings.Contains(f.Name, ".") && loc != Body {
		return errors.New("nested names are only valid in a body")
	}
	if f.Type == File && (loc != Body || !d.HasBody()) {
		return errors.New("file fields must be sent in a request body")
	}
	return nil
}

// Lookup returns the descriptor for (noun, verb).
func (r *Registry) Lookup(noun, verb string) (*Descriptor, bool) {
	d, ok := r.byKey[key{noun, verb}]
	return d, ok
}

// Shape returns the named response shape.
func (r *Registry) Shape(name string) (Shape, bool) {
	s, ok := r.shapes[name]
	return s, ok
}

// Nouns returns every noun, multi-word nouns included, sorted.
func (r *Registry) Nouns() []string {
	return slices.Clone(r.nouns)
}

// Verbs returns the verbs declared for noun in table order.
func (r *Registry) Verbs(noun string) []string {
	var verbs []string
	for _, d := range r.order {
		if d.Noun == noun {
			verbs = append(verbs, d.Verb)
		}
	}
	return verbs
}

// Descriptors returns every descriptor in table order.
func (r *Registry) Descriptors() []*Descriptor {
	return slices.Clone(r.order)
}

// Default returns the built-in registry, validated on first use.
var Default = sync.OnceValues(func() (*Registry, error) {
	return New(Shapes(), Endpoints())
})
