package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/GophTasks/internal/models"
	"go.uber.org/zap"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto an HTTP status. Errors outside the known
// taxonomy are logged and reported as a generic 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrConflict):
		http.Error(w, "username already exists", http.StatusConflict)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
