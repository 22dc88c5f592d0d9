package exposure

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every ParseError.
var ErrMalformed = errors.New("malformed exposure value")

// ParseError reports a display string that could not be turned into a number.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %s %q: %s", e.Field, e.Input, e.Err.Error())
	}
	return fmt.Sprintf("parsing %s %q: malformed", e.Field, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}
