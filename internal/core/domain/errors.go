package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so the transport layer can map it to an
// HTTP status code without inspecting message text.
type ErrorKind int

const (
	// KindInvalid marks malformed or missing client input.
	KindInvalid ErrorKind = iota + 1
	// KindUnprocessable marks input that parsed but violates a business rule.
	KindUnprocessable
	// KindNotFound marks a reference to a missing entity.
	KindNotFound
	// KindConflict marks a uniqueness violation.
	KindConflict
	// KindUnauthorized marks a missing or invalid credential.
	KindUnauthorized
	// KindTooManyRequests marks a throttled request.
	KindTooManyRequests
)

// Error is the tagged error type raised by services and repositories.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf returns the kind carried by err, or 0 when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) *Error {
	return newError(KindInvalid, format, args...)
}

func Unprocessable(format string, args ...any) *Error {
	return newError(KindUnprocessable, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return newError(KindUnauthorized, format, args...)
}

func TooManyRequests(format string, args ...any) *Error {
	return newError(KindTooManyRequests, format, args...)
}
