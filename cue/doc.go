/*
Package cue loads CUE schemas and turns them into value shapes.

A tree on disk does not say whether a directory is a record or a map, or
whether a file holds an integer or a string. Decoding needs a shape, and
this package derives one from a CUE schema so that callers can describe
their data once, in CUE, instead of building shapes by hand.

# Loading

A Loader reads schema files through a fs/core.ReadFS and compiles them in
one CUE context:

	loader := cue.NewLoader(billy.NewLocal("."))
	schema, err := loader.LoadFile(ctx, "schema.cue")
	if err != nil {
		return err
	}
	root, err := cue.LookupDefinition(schema, "#Service")

LoadPackage loads every .cue file of one directory as a package.

# Shapes

Shape maps CUE types onto value shapes:

	#Service: {
		name:   string
		port?:  int
		tags:   [...string]
		limits: {[string]: int}
		mode:   "dev" | {Listen: {addr: string}}
		labels: {[string]: string} @fstree(subdoc)
		image:  string             @fstree(name="image-ref")
	}

derives a record with an optional port, a sequence of strings, a map from
strings to integers and a variant with a unit case and a payload case. The
@fstree attribute marks a field as a sub-document or renames it on disk.

# Validation

Validate checks a decoded value against the schema it was decoded with.
Fields renamed on disk are matched back to their schema names, and absent
options are left out rather than rendered as null.

# Errors

Schema problems return CodeSchemaFailed, file reads return CodeIO and
values that do not satisfy their schema return CodeInvalidInput. Errors
carry CUE's own details and positions as context.
*/
package cue
