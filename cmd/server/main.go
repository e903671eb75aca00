// Command server runs the HTTP API: registration, login, document upload
// with task enqueue, study retrieval and quiz grading.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/estudai/estudai-api/internal/api"
	"github.com/estudai/estudai-api/internal/config"
	"github.com/estudai/estudai-api/internal/platform/deepseek"
	"github.com/estudai/estudai-api/internal/platform/logger"
	"github.com/estudai/estudai-api/internal/platform/postgres"
	"github.com/estudai/estudai-api/internal/queue"
	"github.com/estudai/estudai-api/internal/service"
	"github.com/estudai/estudai-api/internal/service/auth"
	"github.com/estudai/estudai-api/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.MigrateUp(db); err != nil {
		return err
	}
	log.Info("database ready")

	files, err := newStorage(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}

	generator, err := deepseek.NewGenerator(cfg.LLM, log)
	if err != nil {
		return err
	}

	studyStore := postgres.NewStudyStore(db, log)
	questionStore := postgres.NewQuestionStore(db, log)
	userStore := postgres.NewUserStore(db, log)

	jwtService := auth.NewJWTService(cfg.Auth)
	producer := queue.NewProducer(cfg.Queue, log)

	userService := service.NewUserService(userStore, auth.NewPasswordVerifier(), jwtService, log)
	studyService := service.NewStudyService(studyStore, questionStore, files, producer, log)

	router := api.NewRouter(api.RouterDeps{
		Auth:    api.NewAuthHandler(userService),
		Studies: api.NewStudyHandler(studyService),
		Health:  api.NewHealthHandler(db, generator),
		Tokens:  jwtService,
		Logger:  log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

// openDatabase connects to PostgreSQL and verifies the connection.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// newStorage builds the configured document storage backend.
func newStorage(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (storage.Storage, error) {
	switch cfg.Backend {
	case "minio":
		return storage.NewMinIO(ctx, cfg, log)
	default:
		return storage.NewLocal(cfg.LocalDir, log)
	}
}
