package users

import (
	"errors"
)

// ArgumentError represents a rejected call argument
type ArgumentError struct {
	Type    string
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// Argument error types
const (
	ArgumentErrorTypeInvalid = "invalid_argument"
)

const msgMissingCredentials = "username or password is null"

// NewInvalidArgumentError creates an error for a missing or malformed argument
func NewInvalidArgumentError(message string) *ArgumentError {
	return &ArgumentError{
		Type:    ArgumentErrorTypeInvalid,
		Message: message,
	}
}

// IsInvalidArgument reports whether err is, or wraps, an invalid argument error
func IsInvalidArgument(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr) && argErr.Type == ArgumentErrorTypeInvalid
}
