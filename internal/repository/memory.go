package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/atinyakov/GophTasks/internal/models"
	"github.com/google/uuid"
)

// MemoryTaskRepository keeps tasks in process memory. It has the same
// owner-scoped semantics as PostgresTaskRepository and is used as a test
// double and for running the server without a database.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
}

// NewMemoryTaskRepository returns an empty MemoryTaskRepository.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]models.Task)}
}

// owned returns the task with id if userID owns it. Callers must hold mu.
func (r *MemoryTaskRepository) owned(userID, id string) (models.Task, bool) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return models.Task{}, false
	}
	return t, true
}

// GetTasks returns the tasks of userID that satisfy filter.
func (r *MemoryTaskRepository) GetTasks(_ context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID && filter.Matches(t) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// CreateTask stores a new OPEN task owned by userID.
func (r *MemoryTaskRepository) CreateTask(_ context.Context, userID string, req models.CreateTaskRequest) (*models.Task, error) {
	t := models.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusOpen,
		UserID:      userID,
	}

	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()

	return &t, nil
}

// FindTask returns a copy of the task, or nil if userID does not own id.
func (r *MemoryTaskRepository) FindTask(_ context.Context, userID, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.owned(userID, id)
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// DeleteTask removes the task and reports 1, or 0 if userID does not own id.
func (r *MemoryTaskRepository) DeleteTask(_ context.Context, userID, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned(userID, id); !ok {
		return 0, nil
	}
	delete(r.tasks, id)
	return 1, nil
}

// SaveTask overwrites the stored task and reports 1, or 0 if it no longer
// exists for its owner.
func (r *MemoryTaskRepository) SaveTask(_ context.Context, t *models.Task) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned(t.UserID, t.ID); !ok {
		return 0, nil
	}
	r.tasks[t.ID] = *t
	return 1, nil
}

// MemoryUserRepository keeps users in process memory, enforcing
// username uniqueness like the users table does.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	byUsername map[string]models.User
}

// NewMemoryUserRepository returns an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byUsername: make(map[string]models.User)}
}

// CreateUser stores u or returns models.ErrConflict if the username is taken.
func (r *MemoryUserRepository) CreateUser(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[u.Username]; ok {
		return fmt.Errorf("username %q: %w", u.Username, models.ErrConflict)
	}
	r.byUsername[u.Username] = *u
	return nil
}

// GetUserByUsername returns the user or nil if there is none.
func (r *MemoryUserRepository) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
