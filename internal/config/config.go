package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Queue    QueueConfig    `mapstructure:"queue"    validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database related settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication and authorization settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"           validate:"required,min=32"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`
}

// QueueConfig contains the broker settings for the AI task queue.
// The struct is built once at startup and handed to the producer and
// consumer constructors; nothing reads broker settings at call time.
type QueueConfig struct {
	Host               string `mapstructure:"host"                 validate:"required"`
	Port               int    `mapstructure:"port"                 validate:"required,gt=0,lt=65536"`
	User               string `mapstructure:"user"                 validate:"required"`
	Password           string `mapstructure:"password"             validate:"required"`
	VHost              string `mapstructure:"vhost"`
	QueueName          string `mapstructure:"queue_name"           validate:"required"`
	DialTimeoutSeconds int    `mapstructure:"dial_timeout_seconds" validate:"required,gt=0"`
}

// StorageConfig selects and configures the document storage backend.
type StorageConfig struct {
	// Backend is either "local" or "minio".
	Backend string `mapstructure:"backend" validate:"required,oneof=local minio"`

	// LocalDir is the upload directory for the local backend.
	LocalDir string `mapstructure:"local_dir"`

	// MinIO settings, required when Backend is "minio".
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LLMConfig contains the DeepSeek integration settings.
type LLMConfig struct {
	APIKey                string `mapstructure:"api_key"                 validate:"required"`
	BaseURL               string `mapstructure:"base_url"                validate:"required,url"`
	Model                 string `mapstructure:"model"                   validate:"required"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}
