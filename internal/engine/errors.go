package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidConfig = errors.New("invalid nation config")
	ErrCardNotFound  = errors.New("card not in any pile")
	ErrEmptyPile     = errors.New("pile is empty")
	ErrUnknownEvent  = errors.New("unknown event card")
)

// InvariantError is the panic value raised when a caller breaks a
// precondition of a pile operation, e.g. moving a card that is in no pile.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine invariant violated in %s: %s", e.Op, e.Detail)
}

func invariant(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}

// Recover converts a panicking InvariantError into an error. Any other
// panic value is re-raised. Use as: defer engine.Recover(&err).
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	var inv *InvariantError
	if e, ok := r.(error); ok && errors.As(e, &inv) {
		*err = fmt.Errorf("%w: %v", ErrInvalidAction, inv)
		return
	}
	panic(r)
}
