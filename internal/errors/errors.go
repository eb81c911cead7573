// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-checkable category of an error.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindInternal        Kind = "internal"
)

// Sentinels for errors.Is checks against a kind.
var (
	ErrInvalidInput    = &Error{Kind: KindInvalidInput}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrInternal        = &Error{Kind: KindInternal}
)

// Error carries a kind, a message safe to show to clients and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrConflict) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newf(kind Kind, format string, a ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

func NewInvalidInput(format string, a ...any) error { return newf(KindInvalidInput, format, a...) }

func NewConflict(format string, a ...any) error { return newf(KindConflict, format, a...) }

func NewNotFound(format string, a ...any) error { return newf(KindNotFound, format, a...) }

func NewUnauthenticated(format string, a ...any) error {
	return newf(KindUnauthenticated, format, a...)
}

func NewForbidden(format string, a ...any) error { return newf(KindForbidden, format, a...) }

// NewInternal wraps an unexpected failure. The cause is kept for logging only.
func NewInternal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// Wrap attaches a cause to a kinded error.
func Wrap(kind Kind, err error, format string, a ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Err: err}
}

// NewCampaignNotFound is the not-found error for a campaign id.
func NewCampaignNotFound(id int64) error {
	return NewNotFound("campaign with ID %d not found", id)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}

func IsInvalidInput(err error) bool    { return KindOf(err) == KindInvalidInput }
func IsConflict(err error) bool        { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool        { return KindOf(err) == KindNotFound }
func IsUnauthenticated(err error) bool { return KindOf(err) == KindUnauthenticated }
func IsForbidden(err error) bool       { return KindOf(err) == KindForbidden }
