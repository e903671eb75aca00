package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv provides the settings that have no defaults.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ESTUDAI_DATABASE_URL", "postgres://localhost:5432/estudai")
	t.Setenv("ESTUDAI_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ESTUDAI_QUEUE_USER", "guest")
	t.Setenv("ESTUDAI_QUEUE_PASSWORD", "guest")
	t.Setenv("ESTUDAI_LLM_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "ai_task_queue", cfg.Queue.QueueName)
	assert.Equal(t, "/", cfg.Queue.VHost)
	assert.Equal(t, 5672, cfg.Queue.Port)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.LocalDir)
	assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
	assert.Equal(t, 120, cfg.LLM.RequestTimeoutSeconds)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ESTUDAI_SERVER_PORT", "9090")
	t.Setenv("ESTUDAI_SERVER_LOG_LEVEL", "debug")
	t.Setenv("ESTUDAI_QUEUE_HOST", "rabbit.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "rabbit.internal", cfg.Queue.Host)
}

func TestLoadMissingSecrets(t *testing.T) {
	// Only part of the required settings present.
	t.Setenv("ESTUDAI_DATABASE_URL", "postgres://localhost:5432/estudai")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ESTUDAI_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMinioBackendNeedsEndpoint(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ESTUDAI_STORAGE_BACKEND", "minio")

	_, err := Load()
	assert.Error(t, err)
}
