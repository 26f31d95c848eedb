package models

import "errors"

var (
	// ErrConflict is returned when a username is already taken.
	ErrConflict = errors.New("conflict")
	// ErrNotFound is returned when a task does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned when sign-in fails for any reason
	// attributable to the supplied username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation wraps every input validation failure.
	ErrValidation = errors.New("validation failed")
)
