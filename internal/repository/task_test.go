package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/GophTasks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskRowColumns = []string{"id", "title", "description", "status", "user_id"}

func setupTaskMock(t *testing.T) (*PostgresTaskRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresTaskRepository(db), mock
}

func TestGetTasks_Filters(t *testing.T) {
	open := models.StatusOpen

	tests := []struct {
		name   string
		filter models.TaskFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "no filter",
			filter: models.TaskFilter{},
			query:  `SELECT id, title, description, status, user_id FROM tasks WHERE user_id = $1`,
			args:   []driver.Value{"u1"},
		},
		{
			name:   "status only",
			filter: models.TaskFilter{Status: &open},
			query:  `SELECT id, title, description, status, user_id FROM tasks WHERE user_id = $1 AND status = $2`,
			args:   []driver.Value{"u1", "OPEN"},
		},
		{
			name:   "search only",
			filter: models.TaskFilter{Search: "milk"},
			query:  `SELECT id, title, description, status, user_id FROM tasks WHERE user_id = $1 AND (title ILIKE $2 OR description ILIKE $2)`,
			args:   []driver.Value{"u1", "%milk%"},
		},
		{
			name:   "status and search",
			filter: models.TaskFilter{Status: &open, Search: "50%_off"},
			query:  `SELECT id, title, description, status, user_id FROM tasks WHERE user_id = $1 AND status = $2 AND (title ILIKE $3 OR description ILIKE $3)`,
			args:   []driver.Value{"u1", "OPEN", `%50\%\_off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupTaskMock(t)

			mock.ExpectQuery("^" + regexp.QuoteMeta(tt.query) + "$").
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(taskRowColumns).
					AddRow("t1", "Buy milk", "2 litres", "OPEN", "u1"))

			tasks, err := repo.GetTasks(context.Background(), "u1", tt.filter)
			require.NoError(t, err)
			require.Len(t, tasks, 1)
			assert.Equal(t, models.StatusOpen, tasks[0].Status)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetTasks_EmptyIsNotNil(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, description, status, user_id FROM tasks`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	tasks, err := repo.GetTasks(context.Background(), "u1", models.TaskFilter{})
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestGetTasks_QueryError(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, description, status, user_id FROM tasks`)).
		WithArgs("u1").
		WillReturnError(errors.New("query fail"))

	_, err := repo.GetTasks(context.Background(), "u1", models.TaskFilter{})
	assert.ErrorContains(t, err, "GetTasks")
}

func TestCreateTask_AlwaysOpen(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tasks (id, title, description, status, user_id) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(sqlmock.AnyArg(), "Buy milk", "2 litres", "OPEN", "u1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	task, err := repo.CreateTask(context.Background(), "u1", models.CreateTaskRequest{Title: "Buy milk", Description: "2 litres"})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, models.StatusOpen, task.Status)
	assert.Equal(t, "u1", task.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask_Error(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tasks`)).
		WillReturnError(errors.New("insert failed"))

	_, err := repo.CreateTask(context.Background(), "u1", models.CreateTaskRequest{Title: "t", Description: "d"})
	assert.ErrorContains(t, err, "CreateTask")
}

func TestFindTask_ScopedByOwner(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, description, status, user_id FROM tasks WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "t1").
		WillReturnRows(sqlmock.NewRows(taskRowColumns).AddRow("t1", "title", "desc", "IN_PROGRESS", "u1"))

	task, err := repo.FindTask(context.Background(), "u1", "t1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTask_NoRows(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND id = $2`)).
		WithArgs("u2", "t1").
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	task, err := repo.FindTask(context.Background(), "u2", "t1")
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestFindTask_Error(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "t1").
		WillReturnError(errors.New("conn reset"))

	_, err := repo.FindTask(context.Background(), "u1", "t1")
	assert.ErrorContains(t, err, "FindTask")
}

func TestDeleteTask_RowsAffected(t *testing.T) {
	for _, affected := range []int64{0, 1} {
		repo, mock := setupTaskMock(t)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE user_id = $1 AND id = $2`)).
			WithArgs("u1", "t1").
			WillReturnResult(sqlmock.NewResult(0, affected))

		n, err := repo.DeleteTask(context.Background(), "u1", "t1")
		require.NoError(t, err)
		assert.Equal(t, affected, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestDeleteTask_Error(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks`)).
		WithArgs("u1", "t1").
		WillReturnError(errors.New("delete failed"))

	_, err := repo.DeleteTask(context.Background(), "u1", "t1")
	assert.ErrorContains(t, err, "DeleteTask")
}

func TestSaveTask(t *testing.T) {
	repo, mock := setupTaskMock(t)

	task := &models.Task{ID: "t1", Title: "title", Description: "desc", Status: models.StatusDone, UserID: "u1"}
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tasks SET title = $3, description = $4, status = $5 WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "t1", "title", "desc", "DONE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.SaveTask(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTask_Error(t *testing.T) {
	repo, mock := setupTaskMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tasks`)).
		WillReturnError(errors.New("update failed"))

	_, err := repo.SaveTask(context.Background(), &models.Task{ID: "t1", UserID: "u1", Status: models.StatusOpen})
	assert.ErrorContains(t, err, "SaveTask")
}
