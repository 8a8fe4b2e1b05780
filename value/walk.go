package value

import (
	"github.com/jmgilman/go/fstree/errors"
)

// Walk drives sink with the contents of v.
//
// When s is non-nil, v is checked against it as it is walked and record
// fields declared with FieldShape.Subdoc are written through
// RecordSink.Subdoc. A nil shape walks v as-is.
func Walk(v Value, s *Shape, sink Sink) error {
	if v == nil {
		return errors.New(errors.CodeUnsupportedType, "cannot walk a nil value")
	}
	if s != nil && s.Kind == KindAny {
		s = nil
	}
	if s != nil && s.Kind != v.Kind() {
		return mismatch(s, v)
	}

	switch v := v.(type) {
	case Int:
		if s != nil && !FitsInt(int64(v), s.IntBits()) {
			return errors.Newf(errors.CodeUnsupportedType, "%d overflows %s", int64(v), s)
		}
		return sink.Scalar(v)
	case Uint:
		if s != nil && !FitsUint(uint64(v), s.IntBits()) {
			return errors.Newf(errors.CodeUnsupportedType, "%d overflows %s", uint64(v), s)
		}
		return sink.Scalar(v)
	case Unit, Bool, Float, Char, String, Bytes:
		return sink.Scalar(v)
	case Option:
		if v.Value == nil {
			return sink.None()
		}
		return sink.Some(func(inner Sink) error {
			return Walk(v.Value, elemOf(s), inner)
		})
	case Seq:
		return sink.Seq(func(ss SeqSink) error {
			for _, e := range v {
				if err := ss.Element(func(es Sink) error { return Walk(e, elemOf(s), es) }); err != nil {
					return err
				}
			}
			return nil
		})
	case Tuple:
		if s != nil && len(s.Elems) != len(v) {
			return errors.Newf(errors.CodeUnsupportedType, "expected %s, got tuple of %d elements", s, len(v))
		}
		return sink.Tuple(func(ss SeqSink) error {
			for i, e := range v {
				var es *Shape
				if s != nil {
					es = s.Elems[i]
				}
				if err := ss.Element(func(in Sink) error { return Walk(e, es, in) }); err != nil {
					return err
				}
			}
			return nil
		})
	case Map:
		return sink.Map(func(ms MapSink) error {
			for _, e := range v {
				if e.Key == nil || !e.Key.Kind().IsScalar() {
					return errors.New(errors.CodeUnsupportedType, "map keys must be scalar values")
				}
				if s != nil && s.Key.Kind != KindAny && s.Key.Kind != e.Key.Kind() {
					return mismatch(s.Key, e.Key)
				}
				if err := ms.Entry(e.Key, func(in Sink) error { return Walk(e.Value, elemOf(s), in) }); err != nil {
					return err
				}
			}
			return nil
		})
	case Record:
		return walkRecord(v, s, sink)
	case Variant:
		var cs *Shape
		if s != nil {
			c, ok := s.Case(v.Name)
			if !ok {
				return errors.Newf(errors.CodeUnsupportedType, "unknown variant %q for %s", v.Name, s)
			}
			if (c.Payload == nil) != (v.Payload == nil) {
				return errors.Newf(errors.CodeUnsupportedType, "variant %q payload does not match %s", v.Name, s)
			}
			cs = c.Payload
		}
		if v.Payload == nil {
			return sink.UnitVariant(v.Name)
		}
		return sink.Variant(v.Name, func(in Sink) error { return Walk(v.Payload, cs, in) })
	default:
		return errors.Newf(errors.CodeUnsupportedType, "unsupported value type %T", v)
	}
}

func walkRecord(r Record, s *Shape, sink Sink) error {
	if s != nil {
		for _, f := range s.Fields {
			if _, ok := r.Get(f.Name); !ok && f.Shape.Kind != KindOption {
				return errors.Newf(errors.CodeUnsupportedType, "missing field %q required by %s", f.Name, s)
			}
		}
	}

	return sink.Record(func(rs RecordSink) error {
		for _, f := range r.Fields {
			var fs FieldShape
			if s != nil {
				var ok bool
				fs, ok = s.Field(f.Name)
				if !ok {
					return errors.Newf(errors.CodeUnsupportedType, "field %q is not declared by %s", f.Name, s)
				}
			}
			write := rs.Field
			if fs.Subdoc {
				write = rs.Subdoc
			}
			fv := f.Value
			if err := write(f.Name, func(in Sink) error { return Walk(fv, fs.Shape, in) }); err != nil {
				return err
			}
		}
		return nil
	})
}

func elemOf(s *Shape) *Shape {
	if s == nil {
		return nil
	}
	return s.Elem
}
