package value

// Sink receives a value tree one shape at a time. Encoders implement Sink;
// Walk drives one from a Value, and a caller may drive one by hand.
//
// Composite methods take a callback that receives the element-level sink.
// The callback must only use that sink before it returns.
type Sink interface {
	// Scalar writes a leaf: Unit, Bool, Int, Uint, Float, Char, String or Bytes.
	Scalar(v Value) error

	// None writes an absent option.
	None() error

	// Some writes a present option; fn writes the inner value at the same
	// location.
	Some(fn func(Sink) error) error

	// Seq writes a variable-length sequence.
	Seq(fn func(SeqSink) error) error

	// Tuple writes a fixed-length sequence.
	Tuple(fn func(SeqSink) error) error

	// Map writes a keyed collection.
	Map(fn func(MapSink) error) error

	// Record writes a value with named fields.
	Record(fn func(RecordSink) error) error

	// UnitVariant writes a variant case without payload.
	UnitVariant(name string) error

	// Variant writes a variant case; fn writes the payload.
	Variant(name string, fn func(Sink) error) error
}

// SeqSink receives the elements of a sequence or tuple, in order.
type SeqSink interface {
	Element(fn func(Sink) error) error
}

// MapSink receives map entries. Keys must be scalar values.
type MapSink interface {
	Entry(key Value, fn func(Sink) error) error
}

// RecordSink receives record fields.
type RecordSink interface {
	// Field writes one field.
	Field(name string, fn func(Sink) error) error

	// Subdoc writes one field as a single sub-document: the value written
	// by fn is captured whole and handed to the sub-document codec.
	Subdoc(name string, fn func(Sink) error) error
}
