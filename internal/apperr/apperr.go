// Package apperr carries the error taxonomy shared by services and handlers.
package apperr

import "errors"

// ErrNotFound marks a lookup whose id or name is absent from its collection.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError with the given message.
func Invalid(msg string) error { return &ValidationError{Msg: msg} }
