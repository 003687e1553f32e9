package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation against an item whose current
// lifecycle state does not allow it (e.g. selling a phone that is already sold).
var ErrInvalidState = errors.New("item is not in a valid state for this operation")

// ErrInsufficientStock indicates a bulk sale requested more units than are in stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidAmount indicates a monetary amount violating a constraint
// (non-positive where positive is required, discount exceeding subtotal, ...).
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside a message and cause.
// Repositories use it to wrap low-level database failures.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
