/*
Package fstree maps value trees to directory trees and back.

# Overview

A value is stored below a root directory in a core.FS. Every scalar becomes
exactly one file and every composite becomes exactly one directory:

	value                           tree
	{int: 7, seq: ["a", "b"]}       int      -> "7"
	                                seq/0    -> "a"
	                                seq/1    -> "b"

Scalars are stored as their text form: booleans as "true" or "false",
integers in decimal, floats in the shortest form that parses back to the
same float64, characters and strings as UTF-8. Bytes are stored raw and Unit
as an empty file.

Sequences and tuples store their elements under the names 0, 1, 2, and so
on. Decoding reads up to the first missing index, so a gap truncates the
sequence. Maps store one entry per key, named by the key's text form.
Records store one entry per field.

An Option is stored in place: None writes nothing and Some writes its value.
Some(None) is therefore read back as None.

A variant without payload is a file holding the case name. A variant with
payload is a directory holding a single entry named after the case:

	Unit            e          -> "Unit"
	Struct{a: 14}   Struct/a   -> "14"

Decoding takes the case name from the first entry of the directory, so a
variant directory must not hold anything else.

# Sub-documents

A record field or map key whose name starts with the sub-document marker
("json" by default), or a field declared with shape.Subdoc, is not expanded.
Its whole value is rendered by a subdoc.Codec and stored as a single file:

	fstree.Encode(fsys, "svc", v,
	    fstree.WithSubdocCodec(subdoc.YAML()),
	    fstree.WithShape(schema),
	)

# Safety

Every entry below the root is checked with Lstat before it is read or written
through. A symbolic link fails the operation with errors.CodeSymlink. The
root itself is trusted.

A leaf may only be written once at a location. Writing a second leaf without
moving the cursor fails with errors.CodeContractViolation, which is
classified as fatal.

# Errors

All errors are errors.Error values. errors.PathOf returns the storage path of
the entry being processed when the error occurred.
*/
package fstree
