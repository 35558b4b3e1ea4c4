package apperrors

import (
	"errors"
	"fmt"
)

// Code classifies request-level failures. Every error surfaced to a client
// carries exactly one code; the API layer maps codes to HTTP statuses.
type Code string

const (
	CodeValidation           Code = "validation_error"
	CodeUniqueness           Code = "uniqueness_violation"
	CodeReferentialIntegrity Code = "referential_integrity"
	CodeAuthentication       Code = "authentication_error"
	CodeAuthorization        Code = "authorization_error"
	CodeNotFound             Code = "not_found"
)

// Error is a code-carrying error. Field is set for validation errors that
// can be attributed to a single input field.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewField builds a validation error attributed to one input field.
func NewField(field, message string) *Error {
	return &Error{Code: CodeValidation, Field: field, Message: message}
}

// CodeOf returns the code of err, or an empty Code when err is not an
// apperrors.Error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
