package errors

// ErrorClassification indicates how a caller should react to an error.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"

	// ClassificationFatal indicates a programming-contract violation. The
	// operation must not be retried and the caller should abort.
	ClassificationFatal ErrorClassification = "FATAL"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// IsFatal returns true if the classification marks a contract violation.
func (c ErrorClassification) IsFatal() bool {
	return c == ClassificationFatal
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeIO: ClassificationRetryable,

	CodeSymlink:           ClassificationPermanent,
	CodeInvalidUnicode:    ClassificationPermanent,
	CodeEmptyDirectory:    ClassificationPermanent,
	CodeEmptyFile:         ClassificationPermanent,
	CodeInvalidBool:       ClassificationPermanent,
	CodeParse:             ClassificationPermanent,
	CodeUnsupportedAtRoot: ClassificationPermanent,
	CodeUnsupportedType:   ClassificationPermanent,
	CodeSubdocument:       ClassificationPermanent,
	CodeInvalidInput:      ClassificationPermanent,
	CodeInvalidConfig:     ClassificationPermanent,
	CodeSchemaFailed:      ClassificationPermanent,
	CodeInternal:          ClassificationPermanent,
	CodeUnknown:           ClassificationPermanent,

	CodeContractViolation: ClassificationFatal,
}

// getDefaultClassification returns the default classification for an error code.
// Returns ClassificationPermanent if the code is not in the map.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
