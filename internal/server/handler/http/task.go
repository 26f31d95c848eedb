package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/GophTasks/internal/middleware"
	"github.com/atinyakov/GophTasks/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService defines the task operations required by TaskHandler.
// Every method is scoped to userID.
type TaskService interface {
	GetTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	GetTaskByID(ctx context.Context, userID, id string) (*models.Task, error)
	CreateTask(ctx context.Context, userID string, req models.CreateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, id string) error
	UpdateTaskStatus(ctx context.Context, userID, id string, status models.TaskStatus) (*models.Task, error)
}

// TaskHandler handles the /tasks endpoints for the authenticated caller.
type TaskHandler struct {
	TaskService TaskService
	// Logger records unexpected failures.
	Logger *zap.Logger
}

// caller returns the authenticated user's ID or answers 401.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, ok := middleware.CallerFromContext(r.Context())
	if !ok || c.ID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return c.ID, true
}

// taskID returns the {id} path parameter. Malformed IDs cannot name an
// existing task, so they are answered with 404 right away.
func taskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "task not found", http.StatusNotFound)
		return "", false
	}
	return id, true
}

// List handles GET /tasks?status=&search=.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := models.TaskFilter{Search: q.Get("search")}
	if raw := q.Get("status"); raw != "" {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			writeError(w, h.Logger, err)
			return
		}
		filter.Status = &status
	}

	tasks, err := h.TaskService.GetTasks(r.Context(), userID, filter)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.GetTaskByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Create handles POST /tasks. Any status in the body is ignored.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), userID, id); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PATCH /tasks/{id}/status.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	status, err := models.ParseTaskStatus(string(req.Status))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	task, err := h.TaskService.UpdateTaskStatus(r.Context(), userID, id, status)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
