// Command worker consumes AI processing tasks: it extracts document text,
// asks the model for a summary and a quiz, and records the result on the
// study row.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/estudai/estudai-api/internal/config"
	"github.com/estudai/estudai-api/internal/document"
	"github.com/estudai/estudai-api/internal/platform/deepseek"
	"github.com/estudai/estudai-api/internal/platform/logger"
	"github.com/estudai/estudai-api/internal/platform/postgres"
	"github.com/estudai/estudai-api/internal/queue"
	"github.com/estudai/estudai-api/internal/storage"
	"github.com/estudai/estudai-api/internal/worker"
)

// reconnectDelay spaces out consume attempts when the broker is down.
const reconnectDelay = 5 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("worker exited with error", slog.String("error", err.Error()))
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

	files, err := newStorage(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}

	generator, err := deepseek.NewGenerator(cfg.LLM, log)
	if err != nil {
		return err
	}

	processor := worker.NewProcessor(
		postgres.NewStudyStore(db, log),
		files,
		document.NewLoader(),
		generator,
		log,
	)

	consumer := queue.NewConsumer(cfg.Queue, log)
	log.Info("worker starting", slog.String("queue", cfg.Queue.QueueName))

	// The consumer returns when the broker connection drops; keep
	// reconnecting until shutdown.
	for {
		err := consumer.Run(ctx, processor.Process)
		if errors.Is(err, context.Canceled) {
			log.Info("worker stopped")
			return nil
		}
		if err != nil {
			log.Warn("consumer disconnected, retrying",
				slog.String("error", err.Error()),
				slog.Duration("delay", reconnectDelay))
		}

		select {
		case <-ctx.Done():
			log.Info("worker stopped")
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

// openDatabase connects to PostgreSQL and verifies the connection.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
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
