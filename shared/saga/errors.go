package saga

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies business failures. None of them are retryable.
type Kind string

const (
	KindDuplicateTransaction Kind = "DUPLICATE_TRANSACTION"
	KindInvariantViolation   Kind = "INVARIANT_VIOLATION"
	KindNotFound             Kind = "NOT_FOUND"
	KindInvalid              Kind = "INVALID"
)

// Error is a business-level rejection. Participants turn it into a FAIL
// envelope instead of letting it crash the consumer.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind && (other.Message == "" || other.Message == e.Message)
	}
	return false
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrDuplicateTransaction reports that a local record already exists for the idempotency key
func ErrDuplicateTransaction(format string, args ...interface{}) *Error {
	return newError(KindDuplicateTransaction, format, args...)
}

// ErrInvariantViolation reports a broken business rule
func ErrInvariantViolation(format string, args ...interface{}) *Error {
	return newError(KindInvariantViolation, format, args...)
}

// ErrNotFound reports a missing record
func ErrNotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// ErrInvalid reports a malformed request or envelope
func ErrInvalid(format string, args ...interface{}) *Error {
	return newError(KindInvalid, format, args...)
}

// Sentinels for errors.Is checks
var (
	ErrKindDuplicateTransaction = &Error{Kind: KindDuplicateTransaction}
	ErrKindInvariantViolation   = &Error{Kind: KindInvariantViolation}
	ErrKindNotFound             = &Error{Kind: KindNotFound}
	ErrKindInvalid              = &Error{Kind: KindInvalid}
)

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) (Kind, bool) {
	var sagaErr *Error
	if errors.As(err, &sagaErr) {
		return sagaErr.Kind, true
	}
	return "", false
}

// IsBusiness reports whether err is a business rejection rather than an
// infrastructure failure
func IsBusiness(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// IsAbort reports whether err means the handler was interrupted and must not
// publish anything; the message will be redelivered.
func IsAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
