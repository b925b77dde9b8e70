package model

import (
	"errors"
	"net/http"
)

// ErrorKind classifies failures for the HTTP layer.
type ErrorKind string

const (
	KindInvalidInput   ErrorKind = "invalid_input"
	KindUpstreamFetch  ErrorKind = "upstream_fetch"
	KindNotImplemented ErrorKind = "not_implemented"
	KindNoFormats      ErrorKind = "no_formats"
)

// AppError is a classified failure with a user-facing message.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// StatusCode maps the kind to an HTTP status.
func (e *AppError) StatusCode() int {
	if e.Kind == KindInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// NewInvalidInput returns a 400-class error.
func NewInvalidInput(msg string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: msg}
}

// NewUpstreamFetch returns an error for failed extraction or media fetches.
func NewUpstreamFetch(msg string, err error) *AppError {
	return &AppError{Kind: KindUpstreamFetch, Message: msg, Err: err}
}

// NewNotImplemented returns the placeholder error for unsupported platforms.
func NewNotImplemented(msg string) *AppError {
	return &AppError{Kind: KindNotImplemented, Message: msg}
}

// NewNoFormats returns the terminal error for videos without usable streams.
func NewNoFormats(msg string) *AppError {
	return &AppError{Kind: KindNoFormats, Message: msg}
}

// AsAppError unwraps err into an *AppError if it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}
