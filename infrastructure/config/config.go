// Package config provides configuration loading and parsing for launchpad.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so configuration files can use the "5s",
// "250ms" notation in both YAML and JSON.
type Duration time.Duration

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Configuration errors.
var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidFormat indicates the file could not be parsed.
	ErrInvalidFormat = errors.New("invalid configuration format")

	// ErrUnsupportedFormat indicates an unrecognized file extension.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrMissingEnvVar indicates a required environment variable is unset.
	ErrMissingEnvVar = errors.New("missing environment variable")

	// ErrValidationFailed indicates the configuration is semantically invalid.
	ErrValidationFailed = errors.New("configuration validation failed")
)

// Config is the complete launchpad configuration.
type Config struct {
	// Name is a human-readable name for this deployment.
	Name string `json:"name" yaml:"name"`

	// Log configures structured logging.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Storage selects and configures the persistence backend.
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`

	// Dispatch configures downstream effect delivery.
	Dispatch DispatchConfig `json:"dispatch,omitempty" yaml:"dispatch,omitempty"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is json or console.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Driver is one of memory, mongodb, postgres.
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`

	Mongo    MongoConfig    `json:"mongodb,omitempty" yaml:"mongodb,omitempty"`
	Postgres PostgresConfig `json:"postgres,omitempty" yaml:"postgres,omitempty"`
	Redis    RedisConfig    `json:"redis,omitempty" yaml:"redis,omitempty"`
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI      string `json:"uri,omitempty" yaml:"uri,omitempty"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// PostgresConfig configures the PostgreSQL backend.
type PostgresConfig struct {
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
	User     string `json:"user,omitempty" yaml:"user,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	SSLMode  string `json:"ssl_mode,omitempty" yaml:"ssl_mode,omitempty"`
}

// RedisConfig configures the Redis idempotency registry.
type RedisConfig struct {
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
}

// DispatchConfig configures downstream effect delivery. Empty URLs disable
// the corresponding effect kind; those effects are logged and dropped.
type DispatchConfig struct {
	// NotificationURL receives notify effects.
	NotificationURL string `json:"notification_url,omitempty" yaml:"notification_url,omitempty"`
	// XPURL receives award_xp effects.
	XPURL string `json:"xp_url,omitempty" yaml:"xp_url,omitempty"`
	// IdentityURL receives elevate_role effects.
	IdentityURL string `json:"identity_url,omitempty" yaml:"identity_url,omitempty"`
	// Secret signs outgoing payloads when set.
	Secret string `json:"secret,omitempty" yaml:"secret,omitempty"`
	// Timeout bounds each delivery attempt.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// MaxRetries bounds delivery retries per attempt.
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
}

// validStorageDrivers enumerates the supported backends.
var validStorageDrivers = map[string]bool{
	"":         true, // defaults to memory
	"memory":   true,
	"mongodb":  true,
	"postgres": true,
}

var validLogLevels = map[string]bool{
	"": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	var errs []error

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if !validStorageDrivers[c.Storage.Driver] {
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}
	switch c.Storage.Driver {
	case "mongodb":
		if c.Storage.Mongo.URI == "" {
			errs = append(errs, errors.New("storage.mongodb.uri is required"))
		}
	case "postgres":
		if c.Storage.Postgres.Host == "" {
			errs = append(errs, errors.New("storage.postgres.host is required"))
		}
		if c.Storage.Postgres.Database == "" {
			errs = append(errs, errors.New("storage.postgres.database is required"))
		}
	}
	if c.Dispatch.MaxRetries < 0 {
		errs = append(errs, errors.New("dispatch.max_retries must not be negative"))
	}
	if c.Dispatch.Timeout < 0 {
		errs = append(errs, errors.New("dispatch.timeout must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrValidationFailed, errors.Join(errs...))
	}
	return nil
}
