package value

import (
	"fmt"
	"strings"
)

// Shape describes the expected structure of a value. Decoding needs a shape
// because storage alone cannot tell a record from a map, or an integer from
// a string.
//
// Shapes are usually built with the constructors in the shape package.
type Shape struct {
	Kind Kind

	// Bits is the integer width for KindInt and KindUint (8, 16, 32 or 64).
	// Zero means 64.
	Bits int

	// Elem is the element shape of an Option or Seq, and the value shape of a Map.
	Elem *Shape

	// Key is the key shape of a Map. It must be a scalar shape.
	Key *Shape

	// Elems are the element shapes of a Tuple, in order.
	Elems []*Shape

	// Fields are the declared fields of a Record, in order.
	Fields []FieldShape

	// Cases are the declared cases of a Variant.
	Cases []CaseShape
}

// FieldShape declares one record field.
type FieldShape struct {
	Name  string
	Shape *Shape

	// Subdoc routes the whole field through the sub-document codec
	// regardless of its name.
	Subdoc bool
}

// CaseShape declares one variant case. A nil Payload declares a case
// without data.
type CaseShape struct {
	Name    string
	Payload *Shape
}

// Field returns the declared field with the given name.
func (s *Shape) Field(name string) (FieldShape, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldShape{}, false
}

// Case returns the declared case with the given name.
func (s *Shape) Case(name string) (CaseShape, bool) {
	for _, c := range s.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return CaseShape{}, false
}

// IntBits returns the effective integer width.
func (s *Shape) IntBits() int {
	if s.Bits == 0 {
		return 64
	}
	return s.Bits
}

// String renders the shape in a compact, CUE-like notation used in error
// messages.
func (s *Shape) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.Kind {
	case KindInt:
		return fmt.Sprintf("int%d", s.IntBits())
	case KindUint:
		return fmt.Sprintf("uint%d", s.IntBits())
	case KindOption:
		return s.Elem.String() + "?"
	case KindSeq:
		return "[..." + s.Elem.String() + "]"
	case KindTuple:
		parts := make([]string, len(s.Elems))
		for i, e := range s.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindMap:
		return "{[" + s.Key.String() + "]: " + s.Elem.String() + "}"
	case KindRecord:
		parts := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			parts[i] = f.Name + ": " + f.Shape.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindVariant:
		parts := make([]string, len(s.Cases))
		for i, c := range s.Cases {
			if c.Payload == nil {
				parts[i] = c.Name
			} else {
				parts[i] = c.Name + " " + c.Payload.String()
			}
		}
		return strings.Join(parts, " | ")
	default:
		return s.Kind.String()
	}
}

// Validate checks that the shape is well formed: composite shapes carry
// their element shapes and map keys are scalar.
func (s *Shape) Validate() error {
	if s == nil {
		return newShapeError("shape is nil")
	}
	switch s.Kind {
	case KindInt, KindUint:
		switch s.Bits {
		case 0, 8, 16, 32, 64:
		default:
			return newShapeError(fmt.Sprintf("unsupported integer width %d", s.Bits))
		}
	case KindOption, KindSeq:
		return s.Elem.Validate()
	case KindTuple:
		for _, e := range s.Elems {
			if err := e.Validate(); err != nil {
				return err
			}
		}
	case KindMap:
		if err := s.Key.Validate(); err != nil {
			return err
		}
		if !s.Key.Kind.IsScalar() {
			return newShapeError("map key shape " + s.Key.String() + " is not scalar")
		}
		return s.Elem.Validate()
	case KindRecord:
		seen := make(map[string]bool, len(s.Fields))
		for _, f := range s.Fields {
			if f.Name == "" || seen[f.Name] {
				return newShapeError(fmt.Sprintf("invalid or duplicate field name %q", f.Name))
			}
			seen[f.Name] = true
			if err := f.Shape.Validate(); err != nil {
				return err
			}
		}
	case KindVariant:
		if len(s.Cases) == 0 {
			return newShapeError("variant shape declares no cases")
		}
		for _, c := range s.Cases {
			if c.Name == "" {
				return newShapeError("variant case without a name")
			}
			if c.Payload != nil {
				if err := c.Payload.Validate(); err != nil {
					return err
				}
			}
		}
	case KindInvalid:
		return newShapeError("invalid shape kind")
	}
	return nil
}
