// Package apperr is the error taxonomy shared by the stores, the enrollment
// manager and the HTTP features.
//
// Every domain failure is an *Error whose Kind is one of the sentinels below.
// Callers branch with errors.Is(err, apperr.ErrNotFound) and friends; the
// HTTP layer maps kinds to status codes in one place (see system/respond).
package apperr

import (
	"errors"
	"fmt"
)

// Kinds.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Error is a domain failure with a message that is safe to show to API clients.
type Error struct {
	Kind    error
	Msg     string
	Details map[string]string // per-field messages, validation only
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "application error"
}

func (e *Error) Unwrap() error { return e.Kind }

// NotFound builds an ErrNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Duplicate builds an ErrDuplicateKey error.
func Duplicate(format string, args ...any) *Error {
	return &Error{Kind: ErrDuplicateKey, Msg: fmt.Sprintf(format, args...)}
}

// Invalid builds an ErrValidation error. details may be nil.
func Invalid(msg string, details map[string]string) *Error {
	return &Error{Kind: ErrValidation, Msg: msg, Details: details}
}

// Is reports whether err belongs to one of the taxonomy kinds.
func Is(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateKey)
}

// DetailsOf returns field details when err carries any.
func DetailsOf(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Details
	}
	return nil
}
