package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
name: launchpad-staging
log:
  level: info
storage:
  driver: postgres
  postgres:
    host: db.internal
    port: 5432
    database: launchpad
    user: launchpad
dispatch:
  notification_url: https://notify.internal/api
  timeout: 5s
  max_retries: 3
`

func TestLoader_LoadString_YAML(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.LoadString(validYAML, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	if cfg.Name != "launchpad-staging" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Storage.Driver != "postgres" || cfg.Storage.Postgres.Host != "db.internal" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Dispatch.Timeout.Std() != 5*time.Second {
		t.Errorf("Dispatch.Timeout = %v, want 5s", cfg.Dispatch.Timeout.Std())
	}
}

func TestLoader_LoadString_JSON(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.LoadString(`{"name":"local","storage":{"driver":"memory"}}`, FormatJSON)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	if cfg.Name != "local" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestLoader_LoadString_ExpandsEnv(t *testing.T) {
	t.Setenv("LAUNCHPAD_DB_HOST", "db.prod.internal")

	loader := NewLoader()
	cfg, err := loader.LoadString(`
storage:
  driver: postgres
  postgres:
    host: ${LAUNCHPAD_DB_HOST}
    database: ${LAUNCHPAD_DB_NAME:-launchpad}
`, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}
	if cfg.Storage.Postgres.Host != "db.prod.internal" {
		t.Errorf("host = %q", cfg.Storage.Postgres.Host)
	}
	if cfg.Storage.Postgres.Database != "launchpad" {
		t.Errorf("database = %q, want default applied", cfg.Storage.Postgres.Database)
	}
}

func TestLoader_LoadString_ValidationFailures(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name, yaml string
	}{
		{"unknown driver", "storage:\n  driver: dynamodb\n"},
		{"mongodb without uri", "storage:\n  driver: mongodb\n"},
		{"postgres without host", "storage:\n  driver: postgres\n  postgres:\n    database: x\n"},
		{"bad log level", "log:\n  level: verbose\n"},
		{"negative retries", "dispatch:\n  max_retries: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.LoadString(tt.yaml, FormatYAML); !errors.Is(err, ErrValidationFailed) {
				t.Errorf("error = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Name != "launchpad-staging" {
		t.Errorf("Name = %q", cfg.Name)
	}

	if _, err := loader.LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("missing file error = %v, want ErrConfigNotFound", err)
	}

	badExt := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(badExt, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadFile(badExt); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("bad extension error = %v, want ErrUnsupportedFormat", err)
	}
}
