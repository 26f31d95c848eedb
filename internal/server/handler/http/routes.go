package http

import (
	"net/http"

	"github.com/atinyakov/GophTasks/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the task API.
//
// Routes:
//
//	POST   /auth/signup       → authHandler.SignUp
//	POST   /auth/signin       → authHandler.SignIn
//	GET    /tasks             → taskHandler.List         (bearer token)
//	POST   /tasks             → taskHandler.Create       (bearer token)
//	GET    /tasks/{id}        → taskHandler.Get          (bearer token)
//	DELETE /tasks/{id}        → taskHandler.Delete       (bearer token)
//	PATCH  /tasks/{id}/status → taskHandler.UpdateStatus (bearer token)
//
// Middleware chain (applied in order):
//  1. RequestID
//  2. WithRequestLogging(logger)
//  3. Recoverer
//  4. AllowContentType("application/json") for requests with a body
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	tokens middleware.TokenParser,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))

		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Delete("/{id}", taskHandler.Delete)
		r.Patch("/{id}/status", taskHandler.UpdateStatus)
	})

	return r
}
