package value

import (
	"fmt"

	"github.com/jmgilman/go/fstree/errors"
)

func newShapeError(message string) errors.Error {
	return errors.New(errors.CodeInvalidInput, "invalid shape: "+message)
}

// mismatch reports a value whose kind does not agree with its shape.
func mismatch(s *Shape, v Value) errors.Error {
	got := "nothing"
	if v != nil {
		got = v.Kind().String()
	}
	return errors.Newf(errors.CodeUnsupportedType, "expected %s, got %s", s, got)
}

func parseErrorf(format string, args ...interface{}) errors.Error {
	return errors.New(errors.CodeParse, fmt.Sprintf(format, args...))
}
