package mapping

import (
	"errors"
	"fmt"
)

// ErrInvalidMapping indicates a mapping configuration that cannot be compiled.
var ErrInvalidMapping = errors.New("invalid mapping")

// Error locates a configuration problem.
type Error struct {
	Section string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("mapping section %q: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("mapping section %q field %q: %v", e.Section, e.Field, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrInvalidMapping, e.Err}
}

func newError(section, field string, err error) *Error {
	return &Error{Section: section, Field: field, Err: err}
}
