// Package shape provides constructors for value.Shape.
//
//	s := shape.Record(
//	    shape.Field("int", shape.Int(32)),
//	    shape.Field("seq", shape.Seq(shape.String())),
//	    shape.Field("e", shape.Variant(shape.Case("Unit", nil), shape.Case("Newtype", shape.Uint(8)))),
//	)
package shape

import "github.com/jmgilman/go/fstree/value"

// Unit returns the shape of the empty value.
func Unit() *value.Shape { return &value.Shape{Kind: value.KindUnit} }

// Bool returns the boolean shape.
func Bool() *value.Shape { return &value.Shape{Kind: value.KindBool} }

// Int returns a signed integer shape of the given width in bits.
func Int(bits int) *value.Shape { return &value.Shape{Kind: value.KindInt, Bits: bits} }

// Uint returns an unsigned integer shape of the given width in bits.
func Uint(bits int) *value.Shape { return &value.Shape{Kind: value.KindUint, Bits: bits} }

// Float returns the floating point shape.
func Float() *value.Shape { return &value.Shape{Kind: value.KindFloat} }

// Char returns the single-character shape.
func Char() *value.Shape { return &value.Shape{Kind: value.KindChar} }

// String returns the text shape.
func String() *value.Shape { return &value.Shape{Kind: value.KindString} }

// Bytes returns the raw bytes shape.
func Bytes() *value.Shape { return &value.Shape{Kind: value.KindBytes} }

// Any returns a shape that accepts whatever is stored.
func Any() *value.Shape { return &value.Shape{Kind: value.KindAny} }

// Option returns the shape of an optional elem.
func Option(elem *value.Shape) *value.Shape {
	return &value.Shape{Kind: value.KindOption, Elem: elem}
}

// Seq returns the shape of a variable-length sequence of elem.
func Seq(elem *value.Shape) *value.Shape {
	return &value.Shape{Kind: value.KindSeq, Elem: elem}
}

// Tuple returns the shape of a fixed-length sequence.
func Tuple(elems ...*value.Shape) *value.Shape {
	return &value.Shape{Kind: value.KindTuple, Elems: elems}
}

// Map returns the shape of a map from key to elem. key must be scalar.
func Map(key, elem *value.Shape) *value.Shape {
	return &value.Shape{Kind: value.KindMap, Key: key, Elem: elem}
}

// Record returns the shape of a record with the given fields.
func Record(fields ...value.FieldShape) *value.Shape {
	return &value.Shape{Kind: value.KindRecord, Fields: fields}
}

// Field declares a record field.
func Field(name string, s *value.Shape) value.FieldShape {
	return value.FieldShape{Name: name, Shape: s}
}

// Subdoc declares a record field stored as a single sub-document.
func Subdoc(name string, s *value.Shape) value.FieldShape {
	return value.FieldShape{Name: name, Shape: s, Subdoc: true}
}

// Variant returns the shape of a tagged union.
func Variant(cases ...value.CaseShape) *value.Shape {
	return &value.Shape{Kind: value.KindVariant, Cases: cases}
}

// Case declares a variant case. A nil payload declares a case without data.
func Case(name string, payload *value.Shape) value.CaseShape {
	return value.CaseShape{Name: name, Payload: payload}
}
