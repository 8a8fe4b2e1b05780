package value

import (
	"github.com/jmgilman/go/fstree/errors"
)

// Builder is a Sink that captures what it receives as a Value. It is used to
// lift a subtree out of a streaming encode, and to build values by hand.
type Builder struct {
	v Value
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Value returns the captured value, or nil if nothing was written.
func (b *Builder) Value() Value {
	return b.v
}

func (b *Builder) set(v Value) error {
	if b.v != nil {
		return errors.New(errors.CodeContractViolation, "value written twice to the same builder")
	}
	b.v = v
	return nil
}

// build runs fn against a fresh Builder and returns what it wrote.
func build(fn func(Sink) error) (Value, error) {
	child := NewBuilder()
	if err := fn(child); err != nil {
		return nil, err
	}
	if child.v == nil {
		return nil, errors.New(errors.CodeInvalidInput, "callback wrote no value")
	}
	return child.v, nil
}

// Scalar implements Sink.
func (b *Builder) Scalar(v Value) error {
	if v == nil || !v.Kind().IsScalar() {
		return errors.New(errors.CodeUnsupportedType, "Scalar requires a scalar value")
	}
	return b.set(v)
}

// None implements Sink.
func (b *Builder) None() error {
	return b.set(None())
}

// Some implements Sink.
func (b *Builder) Some(fn func(Sink) error) error {
	v, err := build(fn)
	if err != nil {
		return err
	}
	return b.set(Some(v))
}

// Seq implements Sink.
func (b *Builder) Seq(fn func(SeqSink) error) error {
	es := &elements{}
	if err := fn(es); err != nil {
		return err
	}
	return b.set(Seq(es.values))
}

// Tuple implements Sink.
func (b *Builder) Tuple(fn func(SeqSink) error) error {
	es := &elements{}
	if err := fn(es); err != nil {
		return err
	}
	return b.set(Tuple(es.values))
}

// Map implements Sink.
func (b *Builder) Map(fn func(MapSink) error) error {
	m := &entries{}
	if err := fn(m); err != nil {
		return err
	}
	return b.set(m.m)
}

// Record implements Sink.
func (b *Builder) Record(fn func(RecordSink) error) error {
	r := &fields{}
	if err := fn(r); err != nil {
		return err
	}
	return b.set(r.r)
}

// UnitVariant implements Sink.
func (b *Builder) UnitVariant(name string) error {
	return b.set(Variant{Name: name})
}

// Variant implements Sink.
func (b *Builder) Variant(name string, fn func(Sink) error) error {
	v, err := build(fn)
	if err != nil {
		return err
	}
	return b.set(Variant{Name: name, Payload: v})
}

type elements struct {
	values []Value
}

func (e *elements) Element(fn func(Sink) error) error {
	v, err := build(fn)
	if err != nil {
		return err
	}
	e.values = append(e.values, v)
	return nil
}

type entries struct {
	m Map
}

func (e *entries) Entry(key Value, fn func(Sink) error) error {
	if key == nil || !key.Kind().IsScalar() {
		return errors.New(errors.CodeUnsupportedType, "map keys must be scalar values")
	}
	v, err := build(fn)
	if err != nil {
		return err
	}
	e.m = append(e.m, Entry{Key: key, Value: v})
	return nil
}

type fields struct {
	r Record
}

func (f *fields) Field(name string, fn func(Sink) error) error {
	v, err := build(fn)
	if err != nil {
		return err
	}
	f.r.Fields = append(f.r.Fields, Field{Name: name, Value: v})
	return nil
}

// Subdoc is the same as Field: a captured subtree is already whole.
func (f *fields) Subdoc(name string, fn func(Sink) error) error {
	return f.Field(name, fn)
}
