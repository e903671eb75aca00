package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// config.yaml in the working directory. Environment variables use the
// ESTUDAI_ prefix with underscores for nesting (ESTUDAI_DATABASE_URL,
// ESTUDAI_QUEUE_HOST, ...) and take precedence over file values.
// Returns a populated Config or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, everything can come from the
		// environment. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("ESTUDAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Storage.Backend == "local" && cfg.Storage.LocalDir == "" {
		return nil, errors.New("invalid configuration: storage.local_dir is required for the local backend")
	}
	if cfg.Storage.Backend == "minio" {
		if cfg.Storage.Endpoint == "" || cfg.Storage.Bucket == "" {
			return nil, errors.New("invalid configuration: storage.endpoint and storage.bucket are required for the minio backend")
		}
	}

	return &cfg, nil
}

// setDefaults registers defaults for everything that has a sane one.
// Secrets (database URL, JWT secret, broker password, API key) never get
// defaults and must be supplied explicitly.
func setDefaults(v *viper.Viper) {
	// Viper only resolves environment variables for keys it knows about,
	// so the secret settings are registered with empty defaults here.
	// Validation still rejects them when left unset.
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("queue.user", "")
	v.SetDefault("queue.password", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.use_ssl", false)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("auth.token_lifetime_hours", 24)

	v.SetDefault("queue.host", "localhost")
	v.SetDefault("queue.port", 5672)
	v.SetDefault("queue.vhost", "/")
	v.SetDefault("queue.queue_name", "ai_task_queue")
	v.SetDefault("queue.dial_timeout_seconds", 10)

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_dir", "uploads")

	v.SetDefault("llm.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("llm.model", "deepseek-chat")
	v.SetDefault("llm.request_timeout_seconds", 120)
}
