// Package apperr defines the error kinds surfaced at every operation boundary.
// Each error carries a stable machine-readable Kind plus a human-readable
// message so the transport layer can map it without string matching.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindValidation marks a rejected input field
	KindValidation Kind = "validation"
	// KindAuthorization marks a caller whose role is insufficient
	KindAuthorization Kind = "authorization"
	// KindNotFound marks a lookup of an id that does not exist
	KindNotFound Kind = "not_found"
	// KindPrecondition marks an operation invoked out of order
	KindPrecondition Kind = "precondition"
	// KindStorage marks a failure or timeout of the underlying store
	KindStorage Kind = "storage"
)

// Error is the error type returned by the ledger, report and backup operations.
type Error struct {
	Kind Kind
	// Field names the offending input for validation errors
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, &Error{Kind: k})
// and the helpers below work on wrapped errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func Validationf(field, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func Authorizationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Preconditionf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf(format, args...)}
}

// Storage wraps an underlying store error with context about the operation
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

// KindOf returns the Kind carried by err, or "" for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool    { return KindOf(err) == KindValidation }
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }
func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
func IsPrecondition(err error) bool  { return KindOf(err) == KindPrecondition }
func IsStorage(err error) bool       { return KindOf(err) == KindStorage }
