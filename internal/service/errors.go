package service

import (
	"errors"
	"fmt"
)

// Authentication failures collapse to a single generic error each, so a
// caller cannot tell an unknown username from a wrong password, nor an
// expired refresh token from a rotated-away one.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrPermissionDenied   = errors.New("access denied: insufficient permissions")
)

// DuplicateError reports a unique-constraint violation on a named field.
type DuplicateError struct {
	Resource string
	Field    string
	Value    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s '%s' already exists", e.Resource, e.Field, e.Value)
}

// NotFoundError reports a missing entity looked up by a named field.
type NotFoundError struct {
	Resource string
	Field    string
	Value    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s '%s'", e.Resource, e.Field, e.Value)
}

// IsDuplicate reports whether err is a DuplicateError.
func IsDuplicate(err error) bool {
	var d *DuplicateError
	return errors.As(err, &d)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
