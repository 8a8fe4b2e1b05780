package cue

import (
	"fmt"

	"github.com/jmgilman/go/fstree/errors"
)

// wrapLoadErrorWithContext wraps an error with CodeIO and attaches context metadata.
// Used when reading schema files from the filesystem fails.
func wrapLoadErrorWithContext(err error, message string, ctx map[string]interface{}) errors.Error {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeIO, message, ctx)
}

// wrapSchemaError wraps an error with CodeSchemaFailed.
// Used when CUE compilation, evaluation or shape derivation fails.
func wrapSchemaError(err error, message string) errors.Error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, errors.CodeSchemaFailed, message)
}

// wrapSchemaErrorWithContext wraps an error with CodeSchemaFailed and attaches context metadata.
func wrapSchemaErrorWithContext(err error, message string, ctx map[string]interface{}) errors.Error {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeSchemaFailed, message, ctx)
}

// schemaErrorf creates a CodeSchemaFailed error for an unsupported schema construct.
func schemaErrorf(path string, format string, args ...interface{}) errors.Error {
	return errors.WithContext(
		errors.Newf(errors.CodeSchemaFailed, format, args...),
		"field", formatFieldPath(path),
	)
}

// wrapValidationErrorWithContext wraps an error with CodeInvalidInput and attaches context metadata.
// Used when a value does not satisfy its schema.
func wrapValidationErrorWithContext(err error, message string, ctx map[string]interface{}) errors.Error {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeInvalidInput, message, ctx)
}

// makeContext is a convenience helper for creating context maps inline.
// Example: makeContext("path", "/foo/bar", "line", 42).
func makeContext(kvPairs ...interface{}) map[string]interface{} {
	if len(kvPairs) == 0 {
		return nil
	}

	ctx := make(map[string]interface{})
	for i := 0; i < len(kvPairs)-1; i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kvPairs[i+1]
	}

	if len(ctx) == 0 {
		return nil
	}
	return ctx
}

// formatFieldPath formats a CUE field path for error messages.
func formatFieldPath(path string) string {
	if path == "" {
		return "<root>"
	}
	return fmt.Sprintf("field %s", path)
}
