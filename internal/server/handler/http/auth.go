// Package http provides the HTTP handlers and router of the task API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/GophTasks/internal/models"
	"go.uber.org/zap"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// SignUp registers a new user.
	SignUp(ctx context.Context, creds models.Credentials) (*models.User, error)
	// SignIn checks credentials and returns an access token.
	SignIn(ctx context.Context, creds models.Credentials) (string, error)
}

// AuthHandler handles HTTP requests for user registration and sign-in.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Logger records unexpected failures.
	Logger *zap.Logger
}

// SignInResponse is returned by a successful sign-in.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

// SignUp handles POST /auth/signup.
// It expects a JSON body with "username" and "password" and answers
// 201 with the created user, 400 on invalid input, or 409 if the
// username is taken.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := h.AuthService.SignUp(r.Context(), creds)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

// SignIn handles POST /auth/signin and answers with an access token,
// or 401 if the credentials do not match.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.SignIn(r.Context(), creds)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SignInResponse{AccessToken: token})
}
