package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping and caller branching.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindPermission
)

// Error is the error type returned by the service layer. Handlers map it to
// an HTTP status exactly once via HTTPStatus.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports a missing or malformed required field.
func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

// NotFound reports a referenced entity that does not exist or is out of the
// actor's scope.
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// Conflict reports a duplicate code/number, an invalid state transition, or
// an operation whose precondition (e.g. sufficient deposit) is unmet.
func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// Permission reports an actor role not authorized for the attempted action.
func Permission(format string, args ...interface{}) *Error {
	return newError(KindPermission, format, args...)
}

// Wrap attaches an underlying cause to a kinded error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	e := newError(kind, format, args...)
	e.Err = err
	return e
}

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsValidation(err error) bool { return isKind(err, KindValidation) }
func IsNotFound(err error) bool   { return isKind(err, KindNotFound) }
func IsConflict(err error) bool   { return isKind(err, KindConflict) }
func IsPermission(err error) bool { return isKind(err, KindPermission) }

// HTTPStatus maps an error to the response status code. Unknown errors are
// reported as 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
