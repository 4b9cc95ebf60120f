// Package apperr carries an HTTP status and a user-safe message alongside
// an underlying error.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// SystemErrorMessage is shown to users when an internal error occurs.
const SystemErrorMessage = "Internal server error"

var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, status int, message string) *AppError {
	return &AppError{Err: err, Status: status, Message: message}
}

// AccessDenied is returned when the current user may not see a page.
func AccessDenied() *AppError {
	return New(ErrAccessDenied, http.StatusForbidden, "Access Denied.")
}

// From converts any error into an AppError. Known sentinels keep their
// meaning; everything else becomes an internal error.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrAccessDenied):
		return New(err, http.StatusForbidden, "Access Denied.")
	case errors.Is(err, ErrNotFound):
		return New(err, http.StatusNotFound, "Not Found")
	default:
		return New(err, http.StatusInternalServerError, SystemErrorMessage)
	}
}
