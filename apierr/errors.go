package apierr

import (
	"errors"
	"fmt"
)

// Error is the single error type returned by the library.
// Field and Value are only set for errors reported by the remote service.
type Error struct {
	Code    Code
	Field   string
	Value   string
	Message string // raw message from the remote service, if any
	Err     error
}

// New creates an error for a catalogued code
func New(code Code) *Error {
	return &Error{Code: code}
}

// Wrap creates an error for a catalogued code with an underlying cause
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// FromRemote translates the error object of a failed envelope.
// Unknown combinations fall back to ResponseError, keeping the raw message.
func FromRemote(number int, message, field, value string) *Error {
	code, ok := Lookup(number, message, field)
	if !ok {
		code = ResponseError
	}
	return &Error{
		Code:    code,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("wgapi: [%s] %s", e.Code, e.Code.Render(e.Field))
	if e.Code == ResponseError && e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %q)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsRemote checks if the error was reported by the remote service
func (e *Error) IsRemote() bool {
	return e.Code.Number < 1000
}

// IsBuildError checks if the error happened while assembling the request URL
func (e *Error) IsBuildError() bool {
	return e.Code.Number > 1000 && e.Code.Number < 1100
}

// IsTransportError checks if the error happened while talking to the server
func (e *Error) IsTransportError() bool {
	return e.Code.Number > 1100 && e.Code.Number < 1200
}

// HasCode reports whether any *Error in err's chain carries code
func HasCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// CodeOf returns the code of the outermost *Error in err's chain
func CodeOf(err error) (Code, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return Code{}, false
	}
	return e.Code, true
}
