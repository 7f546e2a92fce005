package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
)

// Error is a kind plus the message shown to the client. Fields are extra
// values rendered next to the message.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]interface{}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) with(key string, value interface{}) *Error {
	if e.Fields == nil {
		e.Fields = map[string]interface{}{}
	}
	e.Fields[key] = value
	return e
}
