package errors

import "fmt"

// New creates a new Error with the given code and message.
// The error classification is determined by the error code using default mappings.
//
// Example:
//
//	err := errors.New(errors.CodeEmptyDirectory, "variant directory has no entries")
func New(code ErrorCode, message string) Error {
	return &codedError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new Error with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidBool, "invalid bool %q", content)
func Newf(code ErrorCode, format string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(format, args...))
}

// NewAt creates a new Error and attaches the tree path where it occurred.
//
// Example:
//
//	err := errors.NewAt(errors.CodeEmptyFile, "empty file", "/data/tree/c")
func NewAt(code ErrorCode, message, path string) Error {
	return &codedError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
		context:        map[string]interface{}{PathKey: path},
	}
}
