package minio

import (
	"path"
	"strings"
)

// cleanKey turns a slash or backslash separated name into an object key
// without leading or trailing slashes. The root is ".".
func cleanKey(name string) string {
	name = path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	if name == "/" {
		return "."
	}
	return name[1:]
}

// cleanPrefix normalizes a key prefix; the empty prefix is "".
func cleanPrefix(prefix string) string {
	if prefix = cleanKey(prefix); prefix == "." {
		return ""
	}
	return prefix
}

// joinKey places name under prefix. The root of an empty prefix is "".
func joinKey(prefix, name string) string {
	name = cleanKey(name)
	switch {
	case name == ".":
		return prefix
	case prefix == "":
		return name
	default:
		return prefix + "/" + name
	}
}

// dirKey returns the listing prefix for a directory key.
func dirKey(key string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key
	}
	return key + "/"
}
