package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects as files inside a single upload directory.
// Keys are restricted to bare file names so a crafted key can never
// escape the directory.
type Local struct {
	dir    string
	logger *slog.Logger
}

// NewLocal creates a Local storage rooted at dir, creating the directory
// if needed. If logger is nil, a default logger will be used.
func NewLocal(dir string, logger *slog.Logger) (*Local, error) {
	if dir == "" {
		return nil, errors.New("storage directory cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	return &Local{
		dir:    dir,
		logger: logger.With(slog.String("component", "local_storage")),
	}, nil
}

// Ensure Local implements the Storage interface
var _ Storage = (*Local)(nil)

// Save implements Storage.Save
func (l *Local) Save(ctx context.Context, key string, data []byte) (string, error) {
	path, err := l.path(key)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		l.logger.Error("failed to write object",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to store object %s: %w", key, err)
	}

	l.logger.Debug("object stored",
		slog.String("key", key),
		slog.Int("size_bytes", len(data)))
	return key, nil
}

// Load implements Storage.Load
func (l *Local) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := l.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, fmt.Errorf("failed to load object %s: %w", key, err)
	}

	return data, nil
}

// Delete implements Storage.Delete
func (l *Local) Delete(ctx context.Context, key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.logger.Error("failed to delete object",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	return nil
}

// Exists implements Storage.Exists
func (l *Local) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.path(key)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// path validates the key and resolves it inside the upload directory.
func (l *Local) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.dir, key), nil
}
