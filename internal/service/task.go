package service

import (
	"context"
	"fmt"

	"github.com/atinyakov/GophTasks/internal/models"
)

// TaskRepository defines the owner-scoped persistence operations needed by TaskService.
// Implementations must never return or modify a task whose UserID differs
// from the userID they are given.
type TaskRepository interface {
	// GetTasks returns the user's tasks matching filter.
	GetTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	// CreateTask stores a new OPEN task for the user.
	CreateTask(ctx context.Context, userID string, req models.CreateTaskRequest) (*models.Task, error)
	// FindTask returns the user's task with id, or nil if there is none.
	FindTask(ctx context.Context, userID, id string) (*models.Task, error)
	// DeleteTask removes the user's task with id and returns the number of rows removed.
	DeleteTask(ctx context.Context, userID, id string) (int64, error)
	// SaveTask persists t for t.UserID and returns the number of rows updated.
	SaveTask(ctx context.Context, t *models.Task) (int64, error)
}

// TaskService implements task management for a single calling user.
type TaskService struct {
	// repo is the underlying persistence repository.
	repo TaskRepository
}

// NewTaskService constructs a TaskService with the provided TaskRepository.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// GetTasks lists the user's tasks matching filter.
func (s *TaskService) GetTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.GetTasks(ctx, userID, filter)
}

// GetTaskByID returns the user's task or models.ErrNotFound. Tasks of
// other users are reported as not found.
func (s *TaskService) GetTaskByID(ctx context.Context, userID, id string) (*models.Task, error) {
	t, err := s.repo.FindTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, models.ErrNotFound
	}
	return t, nil
}

// CreateTask creates an OPEN task owned by the user.
func (s *TaskService) CreateTask(ctx context.Context, userID string, req models.CreateTaskRequest) (*models.Task, error) {
	return s.repo.CreateTask(ctx, userID, req)
}

// DeleteTask removes the user's task or returns models.ErrNotFound.
func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	n, err := s.repo.DeleteTask(ctx, userID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateTaskStatus sets the status of the user's task and returns the
// updated task. Every transition is allowed, including to the same status.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, userID, id string, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, status)
	}

	t, err := s.GetTaskByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	t.Status = status
	n, err := s.repo.SaveTask(ctx, t)
	if err != nil {
		return nil, err
	}
	// the row went away between load and save
	if n == 0 {
		return nil, models.ErrNotFound
	}
	return t, nil
}
