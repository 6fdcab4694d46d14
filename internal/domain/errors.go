package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrInventoryFull   = errors.New("inventory full")
	ErrInvalidIndex    = errors.New("index out of range")
	ErrInvalidChoice   = errors.New("choice not among offered options")
	ErrNotEnoughAmmo   = errors.New("not enough ammo")
	ErrNotActivatable  = errors.New("card cannot be activated")
	ErrUnknownPlayer   = errors.New("player not found")
	ErrTooFewPlayers   = errors.New("not enough players")
	ErrTooManyPlayers  = errors.New("too many players")
	ErrDuplicatePlayer = errors.New("duplicate nickname")
)

// InvariantError reports a broken internal invariant. It is raised with panic
// and is fatal to the match that raised it.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Msg
}

func invariant(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}

// Invariantf raises an *InvariantError from outside the package.
func Invariantf(format string, args ...any) {
	invariant(format, args...)
}

// RecoverInvariant converts a panic carrying an *InvariantError into err.
// Other panics are re-raised. Use as: defer domain.RecoverInvariant(&err).
func RecoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(*InvariantError); ok {
		*err = ie
		return
	}
	panic(r)
}
