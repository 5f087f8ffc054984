// Package apperror defines the error kinds every layer returns. The HTTP
// layer maps a Kind to a status code; nobody inspects message text.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindStore is any failure talking to the external store.
	KindStore Kind = iota
	// KindValidation is missing or malformed caller input.
	KindValidation
	// KindNotFound is a single-resource fetch that matched no rows.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindNotFound:
		return "not found"
	default:
		return "store error"
	}
}

// Error is a failure with a kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports bad caller input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an empty single-resource fetch.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Store wraps a store failure. The underlying message is forwarded verbatim.
// An error that already carries a kind is returned unchanged.
func Store(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}

// KindOf returns the kind of err. Errors without a kind count as store errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
