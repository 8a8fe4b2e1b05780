package cue

import (
	"strings"

	"cuelang.org/go/cue"

	"github.com/jmgilman/go/fstree/cue/attributes"
	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/value"
	"github.com/jmgilman/go/fstree/value/shape"
)

// AttributeName is the field attribute read by Shape.
//
//	labels: {[string]: string} @fstree(subdoc)
//	image:  string             @fstree(name="image-ref")
const AttributeName = "fstree"

// maxDepth bounds schema nesting so recursive definitions fail instead of
// looping.
const maxDepth = 64

// Shape derives the value shape described by a CUE schema.
//
// Structs with regular fields become records and their optional fields
// become options. A struct holding only a [string]: T pattern becomes a map
// from strings to T. Open lists become sequences and closed lists tuples.
// A disjunction of string literals and single-field structs becomes a
// variant, and a disjunction with null becomes an option. Anything the
// mapping cannot express is decoded untyped.
//
// Returns CodeSchemaFailed if the schema has errors or nests too deeply.
func Shape(v cue.Value) (*value.Shape, error) {
	s, err := shapeOf(v, 0)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, wrapSchemaError(err, "derived shape is invalid")
	}
	return s, nil
}

// LookupDefinition selects a definition such as "#Root" from a schema. The
// leading "#" may be omitted.
func LookupDefinition(v cue.Value, name string) (cue.Value, error) {
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}
	def := v.LookupPath(cue.ParsePath(name))
	if !def.Exists() {
		return cue.Value{}, errors.WithContext(
			errors.Newf(errors.CodeSchemaFailed, "definition %s not found", name),
			"definition", name,
		)
	}
	if err := def.Err(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(err, "definition is invalid", makeContext("definition", name))
	}
	return def, nil
}

// FieldOptions reports the on-disk name of a struct field and whether it is
// stored as a sub-document, as declared by its @fstree attribute.
func FieldOptions(field cue.Value, name string) (string, bool, error) {
	attr, ok, err := attributes.ParseAttribute(field, AttributeName)
	if err != nil {
		return "", false, wrapSchemaError(err, "invalid field attribute")
	}
	if !ok {
		return name, false, nil
	}
	if rename, ok := attr.Args["name"]; ok {
		if rename == "" {
			return "", false, schemaErrorf(field.Path().String(), "empty field name in @%s", AttributeName)
		}
		name = rename
	}
	return name, attr.Flag("subdoc"), nil
}

func shapeOf(v cue.Value, depth int) (*value.Shape, error) {
	if depth > maxDepth {
		return nil, schemaErrorf(v.Path().String(), "schema nests deeper than %d levels", maxDepth)
	}
	if err := v.Err(); err != nil {
		return nil, wrapSchemaErrorWithContext(err, "schema has errors", makeContext("field", formatFieldPath(v.Path().String())))
	}

	if args, ok := disjuncts(v); ok {
		return disjunctionShape(v, args, depth)
	}
	return kindShape(v, depth)
}

// disjuncts returns the alternatives of a disjunction, following a
// reference to its definition when needed.
func disjuncts(v cue.Value) ([]cue.Value, bool) {
	if op, args := v.Expr(); op == cue.OrOp {
		return args, true
	}
	if op, args := cue.Dereference(v).Expr(); op == cue.OrOp {
		return args, true
	}
	return nil, false
}

func disjunctionShape(v cue.Value, args []cue.Value, depth int) (*value.Shape, error) {
	var (
		nullable bool
		rest     []cue.Value
	)
	for _, a := range args {
		if a.IncompleteKind() == cue.NullKind {
			nullable = true
			continue
		}
		rest = append(rest, a)
	}

	var (
		s   *value.Shape
		err error
	)
	switch {
	case len(rest) == 0:
		s = shape.Unit()
	case len(rest) == 1:
		s, err = shapeOf(rest[0], depth+1)
	default:
		s, err = variantShape(rest, depth)
		if s == nil && err == nil {
			s, err = kindShape(v, depth)
		}
	}
	if err != nil {
		return nil, err
	}

	if nullable && len(rest) > 0 {
		return shape.Option(s), nil
	}
	return s, nil
}

// variantShape maps alternatives that are all string literals or structs
// with a single field. It returns nil when they are not.
func variantShape(args []cue.Value, depth int) (*value.Shape, error) {
	var cases []value.CaseShape
	seen := make(map[string]bool)
	for _, a := range args {
		if name, err := a.String(); err == nil {
			if !seen[name] {
				seen[name] = true
				cases = append(cases, shape.Case(name, nil))
			}
			continue
		}

		if a.IncompleteKind() != cue.StructKind {
			return nil, nil
		}
		iter, err := a.Fields()
		if err != nil {
			return nil, nil
		}
		var (
			name    string
			payload cue.Value
			count   int
		)
		for iter.Next() {
			name = iter.Selector().Unquoted()
			payload = iter.Value()
			count++
		}
		if count != 1 {
			return nil, nil
		}
		p, err := shapeOf(payload, depth+1)
		if err != nil {
			return nil, err
		}
		if !seen[name] {
			seen[name] = true
			cases = append(cases, shape.Case(name, p))
		}
	}
	return shape.Variant(cases...), nil
}

func kindShape(v cue.Value, depth int) (*value.Shape, error) {
	switch v.IncompleteKind() {
	case cue.NullKind:
		return shape.Unit(), nil
	case cue.BoolKind:
		return shape.Bool(), nil
	case cue.IntKind:
		return shape.Int(64), nil
	case cue.FloatKind, cue.NumberKind:
		return shape.Float(), nil
	case cue.StringKind:
		return shape.String(), nil
	case cue.BytesKind:
		return shape.Bytes(), nil
	case cue.ListKind:
		return listShape(v, depth)
	case cue.StructKind:
		return structShape(v, depth)
	default:
		return shape.Any(), nil
	}
}

func listShape(v cue.Value, depth int) (*value.Shape, error) {
	var elems []*value.Shape
	iter, err := v.List()
	if err != nil {
		return nil, wrapSchemaError(err, "invalid list")
	}
	for iter.Next() {
		s, err := shapeOf(iter.Value(), depth+1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, s)
	}

	elem := v.LookupPath(cue.MakePath(cue.AnyIndex))
	switch {
	case elem.Exists() && len(elems) == 0:
		s, err := shapeOf(elem, depth+1)
		if err != nil {
			return nil, err
		}
		return shape.Seq(s), nil
	case elem.Exists():
		return nil, schemaErrorf(v.Path().String(), "lists mixing fixed elements and a pattern are not supported")
	default:
		return shape.Tuple(elems...), nil
	}
}

func structShape(v cue.Value, depth int) (*value.Shape, error) {
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return nil, wrapSchemaError(err, "invalid struct")
	}

	var fields []value.FieldShape
	for iter.Next() {
		fv := iter.Value()
		name, subdoc, err := FieldOptions(fv, iter.Selector().Unquoted())
		if err != nil {
			return nil, err
		}
		s, err := shapeOf(fv, depth+1)
		if err != nil {
			return nil, err
		}
		if iter.IsOptional() && s.Kind != value.KindOption {
			s = shape.Option(s)
		}
		fields = append(fields, value.FieldShape{Name: name, Shape: s, Subdoc: subdoc})
	}
	if len(fields) > 0 {
		return shape.Record(fields...), nil
	}

	elem := v.LookupPath(cue.MakePath(cue.AnyString))
	if !elem.Exists() {
		return shape.Map(shape.String(), shape.Any()), nil
	}
	s, err := shapeOf(elem, depth+1)
	if err != nil {
		return nil, err
	}
	return shape.Map(shape.String(), s), nil
}
