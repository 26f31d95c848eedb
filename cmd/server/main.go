// Package main initializes and starts the task API server, setting up
// configuration, logging, persistence, services, handlers, and TLS.
package main

import (
	"cmp"
	"database/sql"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/GophTasks/internal/auth"
	"github.com/atinyakov/GophTasks/internal/config"
	"github.com/atinyakov/GophTasks/internal/db"
	"github.com/atinyakov/GophTasks/internal/logger"
	"github.com/atinyakov/GophTasks/internal/repository"
	"github.com/atinyakov/GophTasks/internal/server/handler/http"
	"github.com/atinyakov/GophTasks/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Pick the persistence backend.
	var (
		userRepo service.UserRepository
		taskRepo service.TaskRepository
	)
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer func(pg *sql.DB) { _ = pg.Close() }(postgresDB)

		userRepo = repository.NewPostgresUserRepository(postgresDB)
		taskRepo = repository.NewPostgresTaskRepository(postgresDB)
	} else {
		zapLogger.Warn("no database DSN configured, keeping data in memory")
		userRepo = repository.NewMemoryUserRepository()
		taskRepo = repository.NewMemoryTaskRepository()
	}

	// Initialize business-logic services.
	tokens := auth.NewTokenManager(options.JWTSecret, options.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens)
	taskService := service.NewTaskService(taskRepo)

	// Create HTTP handlers for auth and task endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Logger: zapLogger}
	taskHandler := &http.TaskHandler{TaskService: taskService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, taskHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if options.TLSCert != "" {
		zapLogger.Info("starting HTTPS server", zap.String("addr", addr))
		if err := server.ListenAndServeTLS(options.TLSCert, options.TLSKey); err != nil {
			zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
		}
		return
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
