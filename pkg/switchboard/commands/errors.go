package commands

import (
	"errors"
	"fmt"
)

// Sentinel errors for command dispatch.
var (
	// ErrNotFound indicates the command was never registered.
	ErrNotFound = errors.New("command not found")
)

// Error is a fatal dispatch error. It means the caller asked for something the
// dispatcher cannot do, or that the dispatcher's tables and the UI diverged.
// It is never retried internally.
type Error struct {
	Scope   string // "commands" or "routes"
	Message string
	Err     error // Underlying sentinel or cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Scope, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Scope, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsError reports whether err is, or wraps, a dispatch *Error.
func IsError(err error) bool {
	var dispatchErr *Error
	return errors.As(err, &dispatchErr)
}
