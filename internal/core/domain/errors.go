package domain

import (
	"errors"
	"strings"
)

var ErrDuplicateEmail = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrEventNotFound = errors.New("event not found")
var ErrNotAuthorized = errors.New("not authorized")
var ErrTokenRevoked = errors.New("token revoked")

// ValidationError carries every field rule violated during registration.
// All violations are collected and reported together, never just the first.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}
