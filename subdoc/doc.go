// Package subdoc provides whole-document codecs used by the sub-document
// escape hatch.
//
// A field routed through the escape hatch is not expanded into files and
// directories. Its entire value is rendered into a single document by a
// Codec and stored as one leaf file. Decoding reverses the process using the
// shape the caller expects at that location.
//
// Four codecs are available:
//
//   - JSON, backed by github.com/goccy/go-json (the default)
//   - YAML, backed by gopkg.in/yaml.v3
//   - CBOR, backed by github.com/fxamacker/cbor/v2 (core deterministic encoding)
//   - CUE, backed by cuelang.org/go
//
// Every failure is reported with errors.CodeSubdocument.
package subdoc
