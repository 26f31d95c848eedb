// Package service provides the business logic for user registration,
// sign-in, and owner-scoped task management, delegating persistence to
// repository interfaces.
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/atinyakov/GophTasks/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// saltSize is the number of random bytes in a user's salt.
const saltSize = 16

// UserRepository defines the persistence operations
// required by the authentication service.
type UserRepository interface {
	// CreateUser stores a new user. It returns models.ErrConflict if the
	// username is already taken.
	CreateUser(ctx context.Context, u *models.User) error
	// GetUserByUsername returns the user, or nil if there is none.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer produces access tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

// AuthService registers users and signs them in.
type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
	cost   int
}

// NewAuthService constructs an AuthService using the provided repository and token issuer.
func NewAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
}

// SignUp validates creds, hashes the password with a fresh salt and
// stores the new user. A taken username yields models.ErrConflict.
func (s *AuthService) SignUp(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(salt+creds.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password too long", models.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     creds.Username,
		PasswordHash: string(hash),
		Salt:         salt,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SignIn checks creds and returns an access token. An unknown username
// and a wrong password both yield models.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, creds models.Credentials) (string, error) {
	u, err := s.repo.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(u.Salt+creds.Password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return s.tokens.Issue(u)
}

func newSalt() (string, error) {
	b := make([]byte, saltSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}
