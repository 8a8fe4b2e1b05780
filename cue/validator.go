package cue

import (
	"context"
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/jmgilman/go/fstree/value"
)

// ValidationOptions configures validation behavior.
type ValidationOptions struct {
	// Concrete requires all values to be concrete (fully specified).
	// If true, incomplete values will cause validation to fail.
	Concrete bool

	// Final resolves default values before validation.
	Final bool

	// All reports all errors instead of stopping at the first one.
	All bool
}

// DefaultValidationOptions returns the options used by Validate.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		Concrete: true,
		Final:    true,
		All:      true,
	}
}

// ValidationIssue represents a single validation error with structured information.
type ValidationIssue struct {
	// Path is the field path where the error occurred (e.g., ["user", "age"]).
	Path []string

	// Message is the human-readable error message.
	Message string

	// Position is the source position if available.
	Position token.Pos
}

// Validate checks a decoded value against a CUE schema using default options.
func Validate(ctx context.Context, schema cue.Value, v value.Value) error {
	return ValidateWithOptions(ctx, schema, v, DefaultValidationOptions())
}

// ValidateWithOptions checks a decoded value against a CUE schema.
//
// The value is rendered the way the sub-document codecs render it, with
// absent options omitted and fields carrying their schema names.
//
// Returns CodeInvalidInput when the value does not satisfy the schema and
// CodeSchemaFailed when the schema itself is broken.
func ValidateWithOptions(ctx context.Context, schema cue.Value, v value.Value, opts ValidationOptions) error {
	if err := ctx.Err(); err != nil {
		return wrapValidationErrorWithContext(err, "context cancelled", nil)
	}

	if err := schema.Err(); err != nil {
		return wrapSchemaErrorWithContext(
			err,
			"schema is invalid",
			makeContext(
				"schema_error", cueerrors.Details(err, nil),
				"issues", extractValidationIssues(err),
			),
		)
	}

	prepared, err := prepare(v, schema)
	if err != nil {
		return err
	}
	native, err := value.ToNative(prepared, value.WithRawBytes())
	if err != nil {
		return err
	}

	data := schema.Context().Encode(native)
	if err := data.Err(); err != nil {
		return wrapValidationErrorWithContext(
			err,
			"value cannot be represented in CUE",
			makeContext("issues", extractValidationIssues(err)),
		)
	}

	unified := schema.Unify(data)

	var cueOpts []cue.Option
	if opts.Concrete {
		cueOpts = append(cueOpts, cue.Concrete(true))
	}
	if opts.Final {
		cueOpts = append(cueOpts, cue.Final())
	}
	if opts.All {
		cueOpts = append(cueOpts, cue.All())
	}

	// Validate is called without checking unified.Err() first so that the
	// All option can collect every error at once.
	if err := unified.Validate(cueOpts...); err != nil {
		return wrapValidationErrorWithContext(
			err,
			"validation failed",
			makeContext(
				"details", cueerrors.Details(err, nil),
				"issues", extractValidationIssues(err),
				"positions", cueerrors.Positions(err),
			),
		)
	}

	return nil
}

// prepare rewrites a decoded value into the form the schema describes.
// Record fields renamed with @fstree(name=...) get their schema names back,
// and record fields or map entries holding None are dropped so that CUE
// sees them as absent instead of null.
func prepare(v value.Value, schema cue.Value) (value.Value, error) {
	switch v := v.(type) {
	case value.Option:
		if v.IsNone() {
			return v, nil
		}
		inner, err := prepare(v.Value, schema)
		if err != nil {
			return nil, err
		}
		return value.Some(inner), nil
	case value.Seq:
		out := make(value.Seq, len(v))
		for i, e := range v {
			p, err := prepare(e, lookup(schema, cue.AnyIndex))
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case value.Tuple:
		out := make(value.Tuple, len(v))
		for i, e := range v {
			p, err := prepare(e, lookup(schema, cue.Index(i)))
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case value.Map:
		out := make(value.Map, 0, len(v))
		for _, e := range v {
			if isNone(e.Value) {
				continue
			}
			p, err := prepare(e.Value, lookup(schema, cue.AnyString))
			if err != nil {
				return nil, err
			}
			out = append(out, value.Entry{Key: e.Key, Value: p})
		}
		return out, nil
	case value.Record:
		fields, err := schemaFields(schema)
		if err != nil {
			return nil, err
		}
		out := value.Record{Fields: make([]value.Field, 0, len(v.Fields))}
		for _, f := range v.Fields {
			if isNone(f.Value) {
				continue
			}
			sf, ok := fields[f.Name]
			if !ok {
				sf = schemaField{name: f.Name}
			}
			p, err := prepare(f.Value, sf.value)
			if err != nil {
				return nil, err
			}
			out.Fields = append(out.Fields, value.Field{Name: sf.name, Value: p})
		}
		return out, nil
	case value.Variant:
		if v.Payload == nil {
			return v, nil
		}
		p, err := prepare(v.Payload, cue.Value{})
		if err != nil {
			return nil, err
		}
		return value.Variant{Name: v.Name, Payload: p}, nil
	default:
		return v, nil
	}
}

type schemaField struct {
	name  string
	value cue.Value
}

// schemaFields indexes the fields of a struct schema by on-disk name.
func schemaFields(schema cue.Value) (map[string]schemaField, error) {
	fields := make(map[string]schemaField)
	if !schema.Exists() || schema.IncompleteKind() != cue.StructKind {
		return fields, nil
	}
	iter, err := schema.Fields(cue.Optional(true))
	if err != nil {
		return fields, nil
	}
	for iter.Next() {
		name := iter.Selector().Unquoted()
		disk, _, err := FieldOptions(iter.Value(), name)
		if err != nil {
			return nil, err
		}
		fields[disk] = schemaField{name: name, value: iter.Value()}
	}
	return fields, nil
}

func lookup(schema cue.Value, sel cue.Selector) cue.Value {
	if !schema.Exists() {
		return cue.Value{}
	}
	return schema.LookupPath(cue.MakePath(sel))
}

func isNone(v value.Value) bool {
	o, ok := v.(value.Option)
	return ok && o.IsNone()
}

// extractValidationIssues extracts structured validation issues from a CUE error.
func extractValidationIssues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}

	var issues []ValidationIssue
	for _, e := range cueerrors.Errors(err) {
		fmtStr, args := e.Msg()

		var pos token.Pos
		if positions := e.InputPositions(); len(positions) > 0 {
			pos = positions[0]
		}

		issues = append(issues, ValidationIssue{
			Path:     e.Path(),
			Message:  fmt.Sprintf(fmtStr, args...),
			Position: pos,
		})
	}

	return issues
}
