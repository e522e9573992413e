package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidItem is returned when an operation names an id that is not in the list.
	ErrInvalidItem = errors.New("invalid item")
	// ErrInvalidState is returned when drag lifecycle methods are called out of order.
	ErrInvalidState = errors.New("invalid state")
)

type InvalidItemError struct {
	Op string
	ID string
}

func (e InvalidItemError) Error() string {
	return fmt.Sprintf("%s: item not found: %q", e.Op, e.ID)
}

func (e InvalidItemError) Is(target error) bool { return target == ErrInvalidItem }

func errInvalidItem(op, id string) error {
	return InvalidItemError{Op: op, ID: id}
}

func errInvalidState(op, reason string) error {
	return fmt.Errorf("%s: %w: %s", op, ErrInvalidState, reason)
}
