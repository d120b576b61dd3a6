package services

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication is returned for unknown users, disabled users and
	// wrong passwords alike.
	ErrAuthentication = errors.New("invalid login credentials")
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
)

// NotFoundError names the missing document.
type NotFoundError struct {
	DocType string
	Name    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find %s: %s", e.DocType, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError carries a message meant for the client as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
