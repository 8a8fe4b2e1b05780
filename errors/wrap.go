package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the original error.
// The wrapped error is accessible via Unwrap() and compatible with errors.Is and errors.As.
//
// If the wrapped error is an Error, its classification is preserved.
// Otherwise, the default classification for the error code is used.
//
// Returns nil if err is nil.
//
// Example:
//
//	data, err := fsys.ReadFile(name)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "failed to read leaf")
//	}
func Wrap(err error, code ErrorCode, message string) Error {
	if err == nil {
		return nil
	}

	return &codedError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message while preserving the original error.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) Error {
	if err == nil {
		return nil
	}

	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapAt wraps an error and records the tree path where it occurred.
//
// Returns nil if err is nil.
func WrapAt(err error, code ErrorCode, message, path string) Error {
	if err == nil {
		return nil
	}

	return &codedError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		context:        map[string]interface{}{PathKey: path},
		cause:          err,
	}
}

// WrapWithContext wraps an error and attaches context metadata in a single operation.
// The context map is copied to prevent external mutation.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := codec.Encode(v); err != nil {
//	    return errors.WrapWithContext(err, errors.CodeSubdocument, "encode failed", map[string]interface{}{
//	        "codec": codec.Name(),
//	        "path":  path,
//	    })
//	}
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}

	var contextCopy map[string]interface{}
	if ctx != nil {
		contextCopy = make(map[string]interface{}, len(ctx))
		for k, v := range ctx {
			contextCopy[k] = v
		}
	}

	return &codedError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		context:        contextCopy,
		cause:          err,
	}
}

// inheritClassification keeps the classification of a wrapped Error so that a
// fatal or retryable cause stays fatal or retryable once wrapped.
func inheritClassification(err error, code ErrorCode) ErrorClassification {
	var coded Error
	if errors.As(err, &coded) {
		return coded.Classification()
	}
	return getDefaultClassification(code)
}
