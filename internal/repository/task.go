package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/GophTasks/internal/models"
	"github.com/google/uuid"
)

const taskColumns = `id, title, description, status, user_id`

// PostgresTaskRepository stores tasks in a PostgreSQL database.
// Every statement is scoped to the owning user.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the provided *sql.DB.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

// GetTasks returns the tasks of userID that satisfy filter.
// The result is never nil.
func (r *PostgresTaskRepository) GetTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	q := ownedBy(userID)
	if filter.Status != nil {
		q.and("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		q.and("(title ILIKE ? OR description ILIKE ?)", containsPattern(filter.Search))
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks`+q.where(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("GetTasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetTasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a new OPEN task owned by userID and returns it.
func (r *PostgresTaskRepository) CreateTask(ctx context.Context, userID string, req models.CreateTaskRequest) (*models.Task, error) {
	t := &models.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusOpen,
		UserID:      userID,
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Title, t.Description, string(t.Status), t.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("CreateTask: %w", err)
	}
	return t, nil
}

// FindTask returns the task with id owned by userID, or nil without an
// error if no such row exists.
func (r *PostgresTaskRepository) FindTask(ctx context.Context, userID, id string) (*models.Task, error) {
	q := ownedBy(userID).and("id = ?", id)

	var t models.Task
	err := r.DB.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks`+q.where(), q.args...).
		Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindTask: %w", err)
	}
	return &t, nil
}

// DeleteTask removes the task with id owned by userID and reports how
// many rows were removed.
func (r *PostgresTaskRepository) DeleteTask(ctx context.Context, userID, id string) (int64, error) {
	q := ownedBy(userID).and("id = ?", id)

	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks`+q.where(), q.args...)
	if err != nil {
		return 0, fmt.Errorf("DeleteTask: %w", err)
	}
	return res.RowsAffected()
}

// SaveTask writes the mutable fields of t back to its row and reports
// how many rows were updated.
func (r *PostgresTaskRepository) SaveTask(ctx context.Context, t *models.Task) (int64, error) {
	q := ownedBy(t.UserID).and("id = ?", t.ID)
	set := fmt.Sprintf("title = %s, description = %s, status = %s",
		q.bind(t.Title), q.bind(t.Description), q.bind(string(t.Status)))

	res, err := r.DB.ExecContext(ctx, `UPDATE tasks SET `+set+q.where(), q.args...)
	if err != nil {
		return 0, fmt.Errorf("SaveTask: %w", err)
	}
	return res.RowsAffected()
}
