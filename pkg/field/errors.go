package field

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyValue marks a field without a value.
	ErrEmptyValue = errors.New("field: value is empty")
	// ErrInvalidValue marks a value that does not start with a number.
	ErrInvalidValue = errors.New("field: value is not a number")
	// ErrInvalidBound marks a min/max attribute that is not an integer or an
	// inverted range.
	ErrInvalidBound = errors.New("field: invalid bound")
	// ErrUnbounded is returned when an operation needs both bounds and at least
	// one is missing.
	ErrUnbounded = errors.New("field: min and max are required")
	// ErrOutOfRange marks a query value outside the field bounds.
	ErrOutOfRange = errors.New("field: value out of range")
	// ErrUnknownField marks a query key without a matching field.
	ErrUnknownField = errors.New("field: no field matches key")
)

func wrap(id string, err error) error {
	return fmt.Errorf("field %q: %w", id, err)
}
