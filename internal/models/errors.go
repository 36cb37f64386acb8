package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrOrderNotFound      = errors.New("order not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports a rejected request field. Error() is the exact
// message returned to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{Field: field}
}
