package models

import (
	"fmt"
	"strings"
)

// TaskStatus is the lifecycle state of a task. Any status may move to any other.
type TaskStatus string

const (
	// StatusOpen is assigned to every newly created task.
	StatusOpen TaskStatus = "OPEN"
	// StatusInProgress marks a task that is being worked on.
	StatusInProgress TaskStatus = "IN_PROGRESS"
	// StatusDone marks a finished task. Done tasks may be reopened.
	StatusDone TaskStatus = "DONE"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseTaskStatus converts raw input into a TaskStatus.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, raw)
	}
	return s, nil
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	// ID is the unique identifier for the task.
	ID string `json:"id"`
	// Title is a short summary.
	Title string `json:"title"`
	// Description holds free-form details.
	Description string `json:"description"`
	// Status is the current lifecycle state.
	Status TaskStatus `json:"status"`
	// UserID references the owning user.
	UserID string `json:"userId"`
}

// CreateTaskRequest is the payload for creating a task.
// A status sent by the client is not part of it and is never honoured.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate requires both fields to be non-blank.
func (r CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

// UpdateStatusRequest is the payload for changing a task's status.
type UpdateStatusRequest struct {
	Status TaskStatus `json:"status"`
}

// TaskFilter narrows a task listing. Zero values mean "no restriction".
type TaskFilter struct {
	// Status, when set, must equal the task status.
	Status *TaskStatus
	// Search, when non-empty, must be a case-insensitive substring of
	// the title or the description.
	Search string
}

// Matches reports whether t satisfies every predicate of f.
func (f TaskFilter) Matches(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}
