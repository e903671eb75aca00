// Package config defines the application configuration structure and
// loading. Configuration comes from environment variables (ESTUDAI_ prefix)
// layered over an optional config.yaml, and is validated before use.
package config
