package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
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

func TestRun(t *testing.T) {
	tokens := auth.NewTokenManager("cli-test", time.Hour)
	srv := httptest.NewServer(handler.NewRouter(
		&handler.AuthHandler{AuthService: service.NewAuthService(repository.NewMemoryUserRepository(), tokens)},
		&handler.TaskHandler{TaskService: service.NewTaskService(repository.NewMemoryTaskRepository())},
		tokens,
		zap.NewNop(),
	))
	defer srv.Close()

	ctx := context.Background()
	c := client.New(srv.URL, srv.Client())
	sess := &client.Session{BaseURL: srv.URL}
	base := options{username: "alice", password: "Secret123"}

	var out bytes.Buffer
	o := base
	o.cmd = "signup"
	require.NoError(t, run(ctx, c, sess, o, &out))
	assert.Contains(t, out.String(), "user alice created")

	o.cmd = "signin"
	require.NoError(t, run(ctx, c, sess, o, &out))
	assert.Equal(t, "alice", sess.Username)
	assert.NotEmpty(t, sess.Token)

	out.Reset()
	o = options{cmd: "create", title: "Buy milk", description: "2 litres"}
	require.NoError(t, run(ctx, c, sess, o, &out))
	var created models.Task
	require.NoError(t, json.Unmarshal(out.Bytes(), &created))
	assert.Equal(t, models.StatusOpen, created.Status)

	out.Reset()
	o = options{cmd: "status", id: created.ID, status: "DONE"}
	require.NoError(t, run(ctx, c, sess, o, &out))
	var updated models.Task
	require.NoError(t, json.Unmarshal(out.Bytes(), &updated))
	assert.Equal(t, models.StatusDone, updated.Status)

	out.Reset()
	o = options{cmd: "list", search: "MILK"}
	require.NoError(t, run(ctx, c, sess, o, &out))
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(out.Bytes(), &tasks))
	assert.Len(t, tasks, 1)

	out.Reset()
	o = options{cmd: "delete", id: created.ID}
	require.NoError(t, run(ctx, c, sess, o, &out))
	assert.Contains(t, out.String(), "deleted")

	o = options{cmd: "get", id: created.ID}
	assert.ErrorIs(t, run(ctx, c, sess, o, &out), models.ErrNotFound)

	o = options{cmd: "bogus"}
	assert.Error(t, run(ctx, c, sess, o, &out))
}
