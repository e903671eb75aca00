package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/estudai/estudai-api/internal/config"
)

// MinIO stores objects in a MinIO (or any S3-compatible) bucket.
type MinIO struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinIO creates a MinIO storage from the given configuration, ensuring
// the bucket exists. If logger is nil, a default logger will be used.
func NewMinIO(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*MinIO, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinIO{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With(slog.String("component", "minio_storage")),
	}, nil
}

// Ensure MinIO implements the Storage interface
var _ Storage = (*MinIO)(nil)

// Save implements Storage.Save
func (m *MinIO) Save(ctx context.Context, key string, data []byte) (string, error) {
	_, err := m.client.PutObject(
		ctx,
		m.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"},
	)
	if err != nil {
		m.logger.Error("failed to put object",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to store object %s: %w", key, err)
	}

	m.logger.Debug("object stored",
		slog.String("key", key),
		slog.Int("size_bytes", len(data)))
	return key, nil
}

// Load implements Storage.Load
func (m *MinIO) Load(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load object %s: %w", key, err)
	}
	defer func() {
		if err := obj.Close(); err != nil {
			m.logger.Error("failed to close object reader",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		var respErr minio.ErrorResponse
		if errors.As(err, &respErr) && respErr.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	return data, nil
}

// Delete implements Storage.Delete
func (m *MinIO) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		m.logger.Error("failed to delete object",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// Exists implements Storage.Exists
func (m *MinIO) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		var respErr minio.ErrorResponse
		if errors.As(err, &respErr) && respErr.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
