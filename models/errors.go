package models

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	ErrKindValidation ErrorKind = iota
	ErrKindAuthentication
	ErrKindAuthorization
	ErrKindNotFound
	ErrKindConflict
	ErrKindInternal
)

func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrKindValidation:
		return http.StatusBadRequest
	case ErrKindAuthentication:
		return http.StatusUnauthorized
	case ErrKindAuthorization:
		return http.StatusForbidden
	case ErrKindNotFound:
		return http.StatusNotFound
	case ErrKindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the single error type crossing the service boundary. Controllers
// translate Kind into an HTTP status; Debug, when set, is attached to the
// response body for operator diagnosis.
type AppError struct {
	Kind    ErrorKind
	Message string
	Code    string
	Debug   interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrKindValidation, Message: message}
}

func NewAuthenticationError(message string) *AppError {
	return &AppError{Kind: ErrKindAuthentication, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: ErrKindAuthorization, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrKindNotFound, Message: message}
}

func NewConflictError(message string, debug interface{}) *AppError {
	return &AppError{Kind: ErrKindConflict, Message: message, Debug: debug}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: ErrKindInternal, Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
