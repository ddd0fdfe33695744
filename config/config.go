// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Token length bounds, in hex characters.
const (
	MinTokenLength = 16
	MaxTokenLength = 128
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Usage    UsageConfig    `yaml:"usage"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	OpenAPI  OpenAPIConfig  `yaml:"openapi"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AuthConfig configures API key issuance and revocation.
type AuthConfig struct {
	KeyPrefix          string `yaml:"key_prefix"`
	TokenLength        int    `yaml:"token_length"`          // hex chars after the prefix
	MaskRevokeNotFound bool   `yaml:"mask_revoke_not_found"` // report unknown keys as revoked
	AllowForeignRevoke bool   `yaml:"allow_foreign_revoke"`  // allow DELETE /api-key/{token}
}

// UsageConfig configures the background usage recorder.
type UsageConfig struct {
	QueueSize int `yaml:"queue_size"`
}

// DatabaseConfig configures subscriber storage.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "memory", "sqlite" or "postgres"
	DSN    string `yaml:"dsn"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // default: /metrics
}

// OpenAPIConfig configures the Swagger UI.
type OpenAPIConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	THERMOGATE_SERVER_HOST                - Server host (default: 127.0.0.1)
//	THERMOGATE_SERVER_PORT                - Server port (default: 8080)
//	THERMOGATE_AUTH_KEY_PREFIX            - API key prefix (default: tg_)
//	THERMOGATE_AUTH_TOKEN_LENGTH          - Hex chars per key (default: 32)
//	THERMOGATE_AUTH_MASK_REVOKE_NOT_FOUND - Report unknown keys as revoked (default: false)
//	THERMOGATE_AUTH_ALLOW_FOREIGN_REVOKE  - Allow revoking other keys (default: false)
//	THERMOGATE_USAGE_QUEUE_SIZE           - Pending increments before inline apply (default: 4096)
//	THERMOGATE_DATABASE_DRIVER            - memory, sqlite or postgres (default: memory)
//	THERMOGATE_DATABASE_DSN               - Database path or URL
//	THERMOGATE_LOG_LEVEL                  - debug, info, warn, error (default: info)
//	THERMOGATE_LOG_FORMAT                 - json or console (default: json)
//	THERMOGATE_METRICS_ENABLED            - Enable /metrics (default: true)
//	THERMOGATE_OPENAPI_ENABLED            - Enable /swagger (default: true)
func LoadFromEnv() (*Config, error) {
	cfg := Defaults()

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadWithFallback loads path if it exists, otherwise the environment.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// Defaults returns a config with every boolean that defaults to true set.
// Remaining zero values are filled in by Load.
func Defaults() *Config {
	return &Config{
		Metrics: MetricsConfig{Enabled: true},
		OpenAPI: OpenAPIConfig{Enabled: true},
	}
}

// applyEnvOverrides applies THERMOGATE_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Server configuration
	if v := os.Getenv("THERMOGATE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("THERMOGATE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("THERMOGATE_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("THERMOGATE_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// Auth configuration
	if v := os.Getenv("THERMOGATE_AUTH_KEY_PREFIX"); v != "" {
		cfg.Auth.KeyPrefix = v
	}
	if v := os.Getenv("THERMOGATE_AUTH_TOKEN_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Auth.TokenLength = n
		}
	}
	if v := os.Getenv("THERMOGATE_AUTH_MASK_REVOKE_NOT_FOUND"); v != "" {
		cfg.Auth.MaskRevokeNotFound = parseBool(v)
	}
	if v := os.Getenv("THERMOGATE_AUTH_ALLOW_FOREIGN_REVOKE"); v != "" {
		cfg.Auth.AllowForeignRevoke = parseBool(v)
	}

	// Usage configuration
	if v := os.Getenv("THERMOGATE_USAGE_QUEUE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Usage.QueueSize = n
		}
	}

	// Database configuration
	if v := os.Getenv("THERMOGATE_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("THERMOGATE_DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}

	// Logging configuration
	if v := os.Getenv("THERMOGATE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("THERMOGATE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Metrics configuration
	if v := os.Getenv("THERMOGATE_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("THERMOGATE_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}

	// OpenAPI configuration
	if v := os.Getenv("THERMOGATE_OPENAPI_ENABLED"); v != "" {
		cfg.OpenAPI.Enabled = parseBool(v)
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}

	if cfg.Auth.KeyPrefix == "" {
		cfg.Auth.KeyPrefix = "tg_"
	}
	if cfg.Auth.TokenLength == 0 {
		cfg.Auth.TokenLength = 32
	}

	if cfg.Usage.QueueSize == 0 {
		cfg.Usage.QueueSize = 4096
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverMemory
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == DriverSQLite {
		cfg.Database.DSN = "thermogate.db"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Auth.TokenLength < MinTokenLength || cfg.Auth.TokenLength > MaxTokenLength {
		return fmt.Errorf("auth.token_length must be between %d and %d, got %d",
			MinTokenLength, MaxTokenLength, cfg.Auth.TokenLength)
	}
	if strings.ContainsAny(cfg.Auth.KeyPrefix, ": \t\r\n") {
		return fmt.Errorf("auth.key_prefix must not contain ':' or whitespace")
	}

	if cfg.Usage.QueueSize < 0 {
		return fmt.Errorf("usage.queue_size must not be negative")
	}

	switch cfg.Database.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when database.driver is 'postgres'")
		}
	default:
		return fmt.Errorf("database.driver must be one of: memory, sqlite, postgres, got %q", cfg.Database.Driver)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error, got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/'")
	}

	return nil
}
