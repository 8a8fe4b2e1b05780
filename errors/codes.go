package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Storage errors.

	// CodeIO indicates an underlying storage operation failed.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeSymlink indicates a symlink was encountered where a plain file or
	// directory was expected. Symlinks are never followed.
	CodeSymlink ErrorCode = "ENCOUNTERED_SYMLINK"

	// Content errors.

	// CodeInvalidUnicode indicates a path segment or file content required to
	// be text is not valid UTF-8.
	CodeInvalidUnicode ErrorCode = "INVALID_UNICODE"

	// CodeEmptyDirectory indicates a variant payload directory has no entries.
	CodeEmptyDirectory ErrorCode = "EMPTY_DIRECTORY"

	// CodeEmptyFile indicates a character was decoded from zero-length content.
	CodeEmptyFile ErrorCode = "EMPTY_FILE"

	// CodeInvalidBool indicates boolean content is neither "true" nor "false".
	CodeInvalidBool ErrorCode = "INVALID_BOOL"

	// CodeParse indicates scalar or key text failed to parse as the expected type.
	CodeParse ErrorCode = "PARSE_ERROR"

	// Usage errors.

	// CodeUnsupportedAtRoot indicates a leaf value was encoded at the tree root.
	CodeUnsupportedAtRoot ErrorCode = "UNSUPPORTED_AT_ROOT"

	// CodeContractViolation indicates a second leaf write at a location without
	// an intervening ascend. This is a caller bug.
	CodeContractViolation ErrorCode = "CONTRACT_VIOLATION"

	// CodeUnsupportedType indicates a value cannot be represented, or does not
	// match the expected shape.
	CodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"

	// CodeSubdocument indicates the whole-document codec failed.
	CodeSubdocument ErrorCode = "SUBDOCUMENT_FAILED"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeSchemaFailed indicates a schema could not be loaded or interpreted.
	CodeSchemaFailed ErrorCode = "SCHEMA_FAILED"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
