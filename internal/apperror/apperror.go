// Package apperror defines the typed errors surfaced by the session
// utilities and the HTTP layer.
//
// Every domain failure carries a Code and a deterministic, human readable
// message. Callers branch on the Code (via CodeOf or Is), never on the text.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the kind of failure.
type Code string

const (
	NotFound        Code = "NOT_FOUND"
	InvalidRange    Code = "INVALID_RANGE"
	OutOfRange      Code = "OUT_OF_RANGE"
	InvalidArgument Code = "INVALID_ARGUMENT"
	UnknownMarket   Code = "UNKNOWN_MARKET"
	Internal        Code = "INTERNAL"
)

// AppError is an error with a stable code and a fixed message.
type AppError struct {
	code    Code
	message string
}

// New returns an AppError with the given code and message.
func New(code Code, message string) *AppError {
	return &AppError{code: code, message: message}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{code: code, message: fmt.Sprintf(format, args...)}
}

func (e *AppError) Error() string   { return e.message }
func (e *AppError) Code() Code      { return e.code }
func (e *AppError) Message() string { return e.message }

// HTTPStatus maps the error code to the status returned by the API.
func (e *AppError) HTTPStatus() int {
	switch e.code {
	case NotFound, UnknownMarket:
		return http.StatusNotFound
	case InvalidRange, InvalidArgument:
		return http.StatusBadRequest
	case OutOfRange:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the code of the first AppError in err's chain, or Internal
// when there is none. A nil error has no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.code
	}
	return Internal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
