package fstree

import (
	"github.com/jmgilman/go/fstree/value"
)

// formatKey renders a map key as an entry name. Keys use the scalar text
// form; the name must be a single valid path segment.
func formatKey(k value.Value) (string, error) {
	name, err := value.FormatText(k)
	if err != nil {
		return "", err
	}
	if err := validSegment(name); err != nil {
		return "", err
	}
	return name, nil
}

// parseKey parses an entry name as a map key of shape s. Keys without a
// declared shape are strings.
func parseKey(name string, s *value.Shape) (value.Value, error) {
	if s == nil || s.Kind == value.KindAny {
		return value.String(name), nil
	}
	return value.ParseText(name, s)
}
