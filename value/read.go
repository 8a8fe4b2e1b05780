package value

import (
	"github.com/jmgilman/go/fstree/errors"
)

// Read builds a value of shape s from src.
func Read(s *Shape, src Source) (Value, error) {
	switch s.Kind {
	case KindUnit, KindBool, KindInt, KindUint, KindFloat, KindChar, KindString, KindBytes:
		return src.Scalar(s)

	case KindAny:
		return src.Any()

	case KindOption:
		inner, err := src.Option()
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return None(), nil
		}
		v, err := Read(s.Elem, inner)
		if err != nil {
			return nil, err
		}
		return Some(v), nil

	case KindSeq:
		out := Seq{}
		err := src.Seq(-1, func(_ int, elem Source) error {
			v, err := Read(s.Elem, elem)
			if err != nil {
				return err
			}
			out = append(out, v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil

	case KindTuple:
		out := make(Tuple, 0, len(s.Elems))
		err := src.Seq(len(s.Elems), func(i int, elem Source) error {
			v, err := Read(s.Elems[i], elem)
			if err != nil {
				return err
			}
			out = append(out, v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(out) != len(s.Elems) {
			return nil, parseErrorf("tuple arity: expected %d elements, found %d", len(s.Elems), len(out))
		}
		return out, nil

	case KindMap:
		out := Map{}
		err := src.Map(s.Key, s.Elem, func(k Value, elem Source) error {
			v, err := Read(s.Elem, elem)
			if err != nil {
				return err
			}
			out = append(out, Entry{Key: k, Value: v})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil

	case KindRecord:
		return readRecord(s, src)

	case KindVariant:
		name, payload, err := src.Variant()
		if err != nil {
			return nil, err
		}
		c, ok := s.Case(name)
		if !ok {
			return nil, parseErrorf("unknown variant %q, expected one of %s", name, s)
		}
		switch {
		case c.Payload == nil && payload == nil:
			return Variant{Name: name}, nil
		case c.Payload == nil:
			return nil, parseErrorf("variant %q carries no payload but is stored as a directory", name)
		case payload == nil:
			return nil, parseErrorf("variant %q requires a payload but is stored as a file", name)
		}
		v, err := Read(c.Payload, payload)
		if err != nil {
			return nil, err
		}
		return Variant{Name: name, Payload: v}, nil

	default:
		return nil, errors.Newf(errors.CodeUnsupportedType, "cannot read shape %s", s)
	}
}

func readRecord(s *Shape, src Source) (Value, error) {
	out := Record{Fields: make([]Field, 0, len(s.Fields))}
	err := src.Record(func(rs RecordSource) error {
		for _, f := range s.Fields {
			read := rs.Field
			if f.Subdoc {
				read = rs.Subdoc
			}
			err := read(f.Name, f.Shape, func(fsrc Source) error {
				v, err := readField(f, fsrc)
				if err != nil {
					return err
				}
				out.Fields = append(out.Fields, Field{Name: f.Name, Value: v})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// readField reads a declared field. Option fields may be absent; any other
// absent field is a parse error.
func readField(f FieldShape, src Source) (Value, error) {
	if f.Shape.Kind == KindOption {
		return Read(f.Shape, src)
	}
	inner, err := src.Option()
	if err != nil {
		return nil, err
	}
	if inner == nil {
		return nil, parseErrorf("missing field %q", f.Name)
	}
	return Read(f.Shape, inner)
}
