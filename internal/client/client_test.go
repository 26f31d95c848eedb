package client_test

import (
	"context"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atinyakov/GophTasks/internal/auth"
	"github.com/atinyakov/GophTasks/internal/client"
	"github.com/atinyakov/GophTasks/internal/models"
	"github.com/atinyakov/GophTasks/internal/repository"
	handler "github.com/atinyakov/GophTasks/internal/server/handler/http"
	"github.com/atinyakov/GophTasks/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter() http.Handler {
	tokens := auth.NewTokenManager("client-test", time.Hour)
	return handler.NewRouter(
		&handler.AuthHandler{AuthService: service.NewAuthService(repository.NewMemoryUserRepository(), tokens)},
		&handler.TaskHandler{TaskService: service.NewTaskService(repository.NewMemoryTaskRepository())},
		tokens,
		zap.NewNop(),
	)
}

func TestClient_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(newRouter())
	defer srv.Close()

	ctx := context.Background()
	c := client.New(srv.URL+"/", srv.Client())
	creds := models.Credentials{Username: "alice", Password: "Secret123"}

	require.NoError(t, c.SignUp(ctx, creds))
	assert.ErrorIs(t, c.SignUp(ctx, creds), models.ErrConflict)

	_, err := c.ListTasks(ctx, "", "")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials, "tasks require a token")

	token, err := c.SignIn(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, token, c.Token)

	task, err := c.CreateTask(ctx, "Buy milk", "2 litres")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, task.Status)

	got, err := c.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)

	updated, err := c.UpdateTaskStatus(ctx, task.ID, models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	tasks, err := c.ListTasks(ctx, "IN_PROGRESS", "milk")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	tasks, err = c.ListTasks(ctx, "DONE", "")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = c.ListTasks(ctx, "bogus", "")
	assert.ErrorIs(t, err, models.ErrValidation)

	require.NoError(t, c.DeleteTask(ctx, task.ID))
	err = c.DeleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestNewHTTPClient_TrustsCA(t *testing.T) {
	srv := httptest.NewTLSServer(newRouter())
	defer srv.Close()

	caFile := filepath.Join(t.TempDir(), "ca.crt")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	require.NoError(t, os.WriteFile(caFile, certPEM, 0o600))

	httpClient, err := client.NewHTTPClient(caFile)
	require.NoError(t, err)

	c := client.New(srv.URL, httpClient)
	require.NoError(t, c.SignUp(context.Background(), models.Credentials{Username: "bobby", Password: "Secret123"}))
}

func TestNewHTTPClient_Errors(t *testing.T) {
	_, err := client.NewHTTPClient(filepath.Join(t.TempDir(), "missing.crt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(t.TempDir(), "junk.crt")
	require.NoError(t, os.WriteFile(junk, []byte("junk"), 0o600))
	_, err = client.NewHTTPClient(junk)
	assert.Error(t, err)

	c, err := client.NewHTTPClient("")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestSession_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	empty, err := client.LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, &client.Session{}, empty)

	s := &client.Session{BaseURL: "http://localhost:8080", Username: "alice", Token: "jwt"}
	require.NoError(t, s.Save(path))

	loaded, err := client.LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = client.LoadSession(path)
	assert.Error(t, err)
}
