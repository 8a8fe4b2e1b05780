// Package attributes parses CUE field attributes such as @fstree(subdoc, name="x").
package attributes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
)

// Attribute represents a parsed CUE attribute with its context.
type Attribute struct {
	Name  string            // Attribute name (e.g., "fstree")
	Args  map[string]string // Parsed arguments; bare flags map to ""
	Path  cue.Path          // Location in CUE tree
	Value cue.Value         // Original value with attribute
}

// Flag reports whether the attribute carries the named argument.
func (a Attribute) Flag(name string) bool {
	_, ok := a.Args[name]
	return ok
}

var keyPattern = regexp.MustCompile(`^\w+$`)

// ParseAttribute extracts attribute information from a CUE value.
// It returns ok=false when the value carries no such attribute and an
// error when the attribute is present but malformed.
func ParseAttribute(value cue.Value, attrName string) (Attribute, bool, error) {
	attr := value.Attribute(attrName)
	if attr.Err() != nil {
		return Attribute{}, false, nil
	}

	args, err := ParseArgs(attr.Contents())
	if err != nil {
		return Attribute{}, false, fmt.Errorf("attribute @%s at %s: %w", attrName, value.Path(), err)
	}

	return Attribute{
		Name:  attrName,
		Args:  args,
		Path:  value.Path(),
		Value: value,
	}, true, nil
}

// ParseArgs parses attribute arguments from CUE attribute syntax.
// The input is the text between the parentheses, for example
// `subdoc, name="api-server"`, which yields {"subdoc": "", "name": "api-server"}.
func ParseArgs(attrText string) (map[string]string, error) {
	args := make(map[string]string)
	if strings.TrimSpace(attrText) == "" {
		return args, nil
	}

	parts, err := splitArgs(attrText)
	if err != nil {
		return nil, err
	}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		key, raw, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !keyPattern.MatchString(key) {
			return nil, fmt.Errorf("malformed attribute syntax: invalid key in %q", part)
		}
		if !hasValue {
			args[key] = ""
			continue
		}

		raw = strings.TrimSpace(raw)
		if len(raw) < 2 || raw[0] != '"' {
			return nil, fmt.Errorf("malformed attribute syntax: value for %q must be quoted", key)
		}
		val, err := strconv.Unquote(raw)
		if err != nil {
			return nil, fmt.Errorf("malformed attribute syntax: value for %q: %w", key, err)
		}
		args[key] = val
	}

	return args, nil
}

// splitArgs splits on commas that are not inside a quoted string.
func splitArgs(s string) ([]string, error) {
	var (
		parts   []string
		start   int
		quoted  bool
		escaped bool
	)
	for i, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if quoted {
		return nil, fmt.Errorf("malformed attribute syntax: unterminated string in %q", s)
	}
	return append(parts, s[start:]), nil
}
