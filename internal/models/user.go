// Package models defines the core data structures for users and tasks,
// the request payloads that create or filter them, and the error values
// shared across the repository, service, and transport layers.
package models

import (
	"fmt"
	"unicode"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// PasswordHash is the bcrypt hash of Salt+password.
	PasswordHash string `json:"-"`
	// Salt is the random per-user value mixed into the password before hashing.
	Salt string `json:"-"`
}

// Credentials is the payload accepted by sign-up and sign-in.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const (
	minUsernameLen = 4
	maxUsernameLen = 20
	minPasswordLen = 8
	maxPasswordLen = 20
)

// Validate checks username and password length and password strength.
// The password needs an upper-case letter, a lower-case letter, and at
// least one digit or symbol.
func (c Credentials) Validate() error {
	if n := len([]rune(c.Username)); n < minUsernameLen || n > maxUsernameLen {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrValidation, minUsernameLen, maxUsernameLen)
	}
	if n := len([]rune(c.Password)); n < minPasswordLen || n > maxPasswordLen {
		return fmt.Errorf("%w: password must be %d-%d characters", ErrValidation, minPasswordLen, maxPasswordLen)
	}

	var upper, lower, other bool
	for _, r := range c.Password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			other = true
		}
	}
	if !upper || !lower || !other {
		return fmt.Errorf("%w: password too weak", ErrValidation)
	}
	return nil
}
