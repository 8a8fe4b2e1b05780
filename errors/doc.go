// Package errors provides the structured error type returned by every fstree
// package.
//
// Errors carry a code identifying the failure kind, a classification
// (retryable, permanent or fatal), a human-readable message, optional context
// metadata and an optional wrapped cause. They remain compatible with the
// standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Codes
//
// The codec reports exactly one code per failure:
//
//   - CodeIO: the storage collaborator failed (read, write, stat, list)
//   - CodeInvalidUnicode: text content or a path segment is not valid UTF-8
//   - CodeSymlink: a symlink was found where a file or directory was expected
//   - CodeEmptyDirectory: a variant directory has no entries
//   - CodeEmptyFile: a character was decoded from empty content
//   - CodeInvalidBool: boolean content is neither "true" nor "false"
//   - CodeParse: text does not parse as the expected type
//   - CodeUnsupportedAtRoot: a leaf value was encoded as the tree root
//   - CodeContractViolation: a location was written twice without an ascend
//   - CodeSubdocument: the whole-document codec failed
//   - CodeUnsupportedType: a value does not match the expected shape
//
// # Classification
//
// CodeIO defaults to retryable so callers with a retry policy can recognise
// transient storage failures; the codec itself never retries. A contract
// violation is classified fatal: it signals a caller bug and should not be
// retried or swallowed.
//
//	if errors.IsFatal(err) {
//	    panic(err)
//	}
//
// # Location
//
// Codec errors record the offending tree path in their context under the
// "path" key. Use PathOf to read it back:
//
//	if errors.GetCode(err) == errors.CodeParse {
//	    log.Printf("bad value at %s", errors.PathOf(err))
//	}
//
// # JSON
//
// ToJSON renders any error as a flat ErrorResponse without the wrapped chain.
// The tree path, when one is recorded anywhere in the chain, becomes the
// top-level "path" field.
package errors
