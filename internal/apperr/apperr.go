// Package apperr defines the error taxonomy shared by the managers and the
// console boundary. Callers classify failures with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("duplicate record")
	ErrCapacityExceeded   = errors.New("class is at maximum capacity")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStorage            = errors.New("storage failure")
)

// Validationf wraps ErrValidation with a message describing the bad input.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with the entity and key that was missing.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Duplicatef wraps ErrDuplicate with the conflicting attribute.
func Duplicatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}

// Storage wraps an underlying database error so the console can report it
// without losing the cause.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
