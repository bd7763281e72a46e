package core

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrBadRequest  ErrorCode = "OPEN189_BAD_REQUEST"
	ErrNotFound    ErrorCode = "OPEN189_NOT_FOUND"
	ErrGone        ErrorCode = "OPEN189_GONE"
	ErrUnavailable ErrorCode = "OPEN189_UNAVAILABLE"
	ErrInternal    ErrorCode = "OPEN189_INTERNAL"
)

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrBadRequest:
		return 400
	case ErrNotFound:
		return 404
	case ErrGone:
		return 410
	case ErrUnavailable:
		return 503
	default:
		return 500
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// ErrRandcodeNotFound is returned by code stores for unknown identifiers.
var ErrRandcodeNotFound = errors.New("randcode not found")
