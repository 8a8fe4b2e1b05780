package value

// Source yields a value tree one shape at a time. Decoders implement Source;
// Read drives one against an expected Shape.
//
// Callbacks receive a Source positioned at the child being read and must
// only use it before they return.
type Source interface {
	// Scalar reads a leaf of the given scalar shape.
	Scalar(s *Shape) (Value, error)

	// Any reads whatever is stored at the current location without an
	// expected shape.
	Any() (Value, error)

	// Option reports whether a value is present at the current location and
	// returns the Source positioned at it, or nil when absent.
	Option() (Source, error)

	// Seq calls fn for each element in order. A negative max reads until
	// the first missing element; otherwise at most max elements are read.
	Seq(max int, fn func(i int, elem Source) error) error

	// Map calls fn for each stored entry with the key parsed against key.
	// elem is the shape of the entry values.
	Map(key, elem *Shape, fn func(k Value, v Source) error) error

	// Record gives fn access to the named fields.
	Record(fn func(RecordSource) error) error

	// Variant returns the stored case name and a Source for its payload.
	// The payload Source is nil for a case stored without payload.
	Variant() (name string, payload Source, err error)
}

// RecordSource gives access to record fields by name.
type RecordSource interface {
	// Field calls fn with a Source positioned at the named field. The field
	// may be absent, which fn detects through Source.Option.
	Field(name string, s *Shape, fn func(Source) error) error

	// Subdoc is like Field but reads the field as a single sub-document of
	// shape s.
	Subdoc(name string, s *Shape, fn func(Source) error) error
}
