// Package apperr defines the error taxonomy shared by every layer of
// the service: validation failures stay recoverable, persistence
// failures keep the user on their current step, missing templates and
// weeks render as empty states. Transport errors are translated into
// one of these kinds before they reach handler code.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindPersistence
	KindNotFound
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Persistence(code string, err error) *Error {
	return &Error{Kind: KindPersistence, Code: code, Message: "persistence failure", Err: err}
}

func NotFound(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsValidation(err error) bool  { return KindOf(err) == KindValidation }
func IsPersistence(err error) bool { return KindOf(err) == KindPersistence }
func IsNotFound(err error) bool    { return KindOf(err) == KindNotFound }
