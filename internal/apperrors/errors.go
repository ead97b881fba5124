package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrency failure inside a unit of work (lock timeout,
// serialization failure, deadlock). The unit of work has been rolled back.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected server side failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-equivalent status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError. A nil cause is replaced by the sentinel that
// matches the code so errors.Is keeps working for callers.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		err = sentinelForCode(code)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates a 400 AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError creates an AppError wrapping ErrConflict and the driver cause.
func NewConflictError(message string, cause error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: errors.Join(ErrConflict, cause)}
}

// StatusCode maps an error chain onto an HTTP status code. The outermost
// AppError's code wins over sentinels wrapped beneath it.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func sentinelForCode(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusConflict:
		return ErrDuplicate
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return ErrInternal
	}
}
