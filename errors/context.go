package errors

import "errors"

// PathKey is the context key under which codec errors record the offending
// tree location.
const PathKey = "path"

// WithContext adds a single context field to an error.
// Returns a new Error with the context field added.
// Existing context fields are preserved.
//
// If err is not an Error, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.New(errors.CodeParse, "invalid integer")
//	err = errors.WithContext(err, "shape", "i32")
func WithContext(err error, key string, value interface{}) Error {
	if err == nil {
		return nil
	}

	coded := toError(err)

	newContext := make(map[string]interface{})
	for k, v := range coded.Context() {
		newContext[k] = v
	}
	newContext[key] = value

	return &codedError{
		code:           coded.Code(),
		classification: coded.Classification(),
		message:        coded.Message(),
		context:        newContext,
		cause:          coded.Unwrap(),
	}
}

// WithContextMap adds multiple context fields to an error.
// Existing context fields are preserved; new fields override existing ones with the same key.
//
// If err is not an Error, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}

	coded := toError(err)

	newContext := make(map[string]interface{})
	for k, v := range coded.Context() {
		newContext[k] = v
	}
	for k, v := range ctx {
		newContext[k] = v
	}

	return &codedError{
		code:           coded.Code(),
		classification: coded.Classification(),
		message:        coded.Message(),
		context:        newContext,
		cause:          coded.Unwrap(),
	}
}

// WithPath records the tree location an error refers to. An existing path is
// kept: the innermost location is the most precise one.
//
// Returns nil if err is nil.
func WithPath(err error, path string) Error {
	if err == nil {
		return nil
	}
	if p := PathOf(err); p != "" {
		return toError(err)
	}
	return WithContext(err, PathKey, path)
}

// PathOf returns the tree location recorded on err, or "" when none is set.
// The first Error in the chain that carries a path wins.
func PathOf(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		coded, ok := e.(Error)
		if !ok {
			continue
		}
		if p, ok := coded.Context()[PathKey].(string); ok {
			return p
		}
	}
	return ""
}

// WithClassification overrides the classification of an error.
//
// If err is not an Error, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.Wrap(ioErr, errors.CodeIO, "write failed")
//	// The backend reported a permission problem; retrying will not help.
//	err = errors.WithClassification(err, errors.ClassificationPermanent)
func WithClassification(err error, classification ErrorClassification) Error {
	if err == nil {
		return nil
	}

	coded := toError(err)

	return &codedError{
		code:           coded.Code(),
		classification: classification,
		message:        coded.Message(),
		context:        coded.Context(),
		cause:          coded.Unwrap(),
	}
}

// toError returns err as an Error, converting plain errors to CodeUnknown.
func toError(err error) Error {
	var coded Error
	if errors.As(err, &coded) {
		return coded
	}
	return &codedError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}
