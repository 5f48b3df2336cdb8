package registry

// ShapeKind selects how a response is laid out in table mode.
type ShapeKind int

const (
	// ListShape renders one row per element of the array at Root.
	ListShape ShapeKind = iota
	// ObjectShape renders the object at Root as header/value pairs.
	ObjectShape
	// MessageShape prints a single templated line.
	MessageShape
)

// Format converts a projected JSON value to cell text.
type Format int

const (
	Text Format = iota
	// YesNo renders booleans as Yes/No.
	YesNo
	// Join renders an array as a comma separated list.
	Join
	// Actor renders {"token_name"} or {"ip"} objects.
	Actor
	// Resource renders {"type","id"} objects as type:id.
	Resource
)

// Column is one declared table column.
type Column struct {
	// Path is a dotted jsonparser key path relative to the row, e.g.
	// "configuration.block_time" or "[0]" for array rows.
	Path   string
	Header string
	Format Format
	// Template composes several paths, e.g. "{a}/{b}s". Overrides Path.
	Template string
}

// Continuation prints a hint when a cursor-paginated response has more data.
type Continuation struct {
	HasMore string
	Cursor  string
	Hint    string
}

// Shape is the curated table view of one kind of response. It never
// constrains what the API returns: undeclared fields are ignored and
// missing ones render empty.
type Shape struct {
	Name string
	Kind ShapeKind
	// Root is the dotted path to the rows or object, usually "data".
	Root    string
	Columns []Column
	// Empty is printed instead of an empty list.
	Empty string
	// Message is the MessageShape template. Placeholders are body paths
	// relative to Root, then invocation arguments; "{path|fallback}"
	// supplies a default.
	Message string
	// Footer is an optional template printed after the table.
	Footer string
	// Paginated list shapes print "Page X of Y (N total)" from meta.
	Paginated bool
	More      *Continuation
	// Success, when set, is a boolean path relative to Root that must be
	// true for a 2xx response to count as success. Otherwise Failure is
	// expanded and reported as an error.
	Success string
	Failure string
}
