// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/GophTasks/internal/auth"
)

type ctxKey string

const userKey ctxKey = "user"

// Caller identifies the authenticated user of a request.
type Caller struct {
	ID       string
	Username string
}

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate is a middleware that requires a valid bearer token.
//
// It reads the "Authorization: Bearer <token>" header, verifies the
// token, and stores the caller in the request context so handlers can
// scope their work to that user. Requests without a valid token are
// rejected with 401.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := WithCaller(r.Context(), Caller{ID: claims.Subject, Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, userKey, c)
}

// CallerFromContext extracts the authenticated caller from ctx.
// The second result is false if the request was not authenticated.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(userKey).(Caller)
	return c, ok
}
