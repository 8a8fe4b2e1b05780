package value

import (
	"github.com/jmgilman/go/fstree/errors"
)

// Reader is a Source backed by an in-memory Value. Decoders hand one to the
// traversal when a subtree was read whole, as with sub-documents.
//
// A Reader over nil represents an absent value.
type Reader struct {
	v Value
}

// NewReader returns a Source that yields v.
func NewReader(v Value) *Reader {
	return &Reader{v: v}
}

// Scalar implements Source.
func (r *Reader) Scalar(s *Shape) (Value, error) {
	if r.v == nil {
		return nil, mismatch(s, nil)
	}
	if err := conforms(r.v, s); err != nil {
		return nil, err
	}
	return r.v, nil
}

// Any implements Source.
func (r *Reader) Any() (Value, error) {
	if r.v == nil {
		return nil, errors.New(errors.CodeUnsupportedType, "no value present")
	}
	return r.v, nil
}

// Option implements Source.
func (r *Reader) Option() (Source, error) {
	switch v := r.v.(type) {
	case nil:
		return nil, nil
	case Option:
		if v.Value == nil {
			return nil, nil
		}
		return NewReader(v.Value), nil
	default:
		return r, nil
	}
}

// Seq implements Source.
func (r *Reader) Seq(max int, fn func(int, Source) error) error {
	var elems []Value
	switch v := r.v.(type) {
	case Seq:
		elems = v
	case Tuple:
		elems = v
	default:
		return errors.Newf(errors.CodeUnsupportedType, "expected seq or tuple, got %s", kindOf(r.v))
	}
	for i, e := range elems {
		if max >= 0 && i >= max {
			break
		}
		if err := fn(i, NewReader(e)); err != nil {
			return err
		}
	}
	return nil
}

// Map implements Source.
func (r *Reader) Map(key, _ *Shape, fn func(Value, Source) error) error {
	m, ok := r.v.(Map)
	if !ok {
		return errors.Newf(errors.CodeUnsupportedType, "expected map, got %s", kindOf(r.v))
	}
	for _, e := range m {
		if err := conforms(e.Key, key); err != nil {
			return err
		}
		if err := fn(e.Key, NewReader(e.Value)); err != nil {
			return err
		}
	}
	return nil
}

// Record implements Source.
func (r *Reader) Record(fn func(RecordSource) error) error {
	rec, ok := r.v.(Record)
	if !ok {
		return errors.Newf(errors.CodeUnsupportedType, "expected record, got %s", kindOf(r.v))
	}
	return fn(recordReader(rec))
}

// Variant implements Source.
func (r *Reader) Variant() (string, Source, error) {
	v, ok := r.v.(Variant)
	if !ok {
		return "", nil, errors.Newf(errors.CodeUnsupportedType, "expected variant, got %s", kindOf(r.v))
	}
	if v.Payload == nil {
		return v.Name, nil, nil
	}
	return v.Name, NewReader(v.Payload), nil
}

type recordReader Record

func (rr recordReader) Field(name string, _ *Shape, fn func(Source) error) error {
	v, _ := Record(rr).Get(name)
	return fn(NewReader(v))
}

func (rr recordReader) Subdoc(name string, s *Shape, fn func(Source) error) error {
	return rr.Field(name, s, fn)
}

// conforms checks that scalar v has the kind and range required by s.
func conforms(v Value, s *Shape) error {
	if s.Kind == KindAny {
		return nil
	}
	if v.Kind() != s.Kind {
		return mismatch(s, v)
	}
	switch v := v.(type) {
	case Int:
		if !FitsInt(int64(v), s.IntBits()) {
			return parseErrorf("%d overflows %s", int64(v), s)
		}
	case Uint:
		if !FitsUint(uint64(v), s.IntBits()) {
			return parseErrorf("%d overflows %s", uint64(v), s)
		}
	}
	return nil
}

func kindOf(v Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}
