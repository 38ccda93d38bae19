package config

import (
	"errors"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("LP_HOST", "db.internal")
	t.Setenv("LP_EMPTY", "")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bracketed", "host: ${LP_HOST}", "host: db.internal"},
		{"simple", "host: $LP_HOST", "host: db.internal"},
		{"default used", "${LP_MISSING:-fallback}", "fallback"},
		{"default skipped", "${LP_HOST:-fallback}", "db.internal"},
		{"empty uses default", "${LP_EMPTY:-fallback}", "fallback"},
		{"unset without default", "x${LP_MISSING}y", "xy"},
		{"no variables", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.input); got != tt.expected {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("LP_HOST", "db.internal")

	if _, err := ExpandEnvStrict("${LP_HOST}"); err != nil {
		t.Errorf("set variable should not error: %v", err)
	}

	if _, err := ExpandEnvStrict("${LP_MISSING}"); !errors.Is(err, ErrMissingEnvVar) {
		t.Errorf("error = %v, want ErrMissingEnvVar", err)
	}
}

func TestExpandEnv_RequiredModifier(t *testing.T) {
	if _, err := ExpandEnvStrict("${LP_REQUIRED:?database host is required}"); !errors.Is(err, ErrMissingEnvVar) {
		t.Errorf("error = %v, want ErrMissingEnvVar", err)
	}

	t.Setenv("LP_REQUIRED", "present")
	got, err := ExpandEnvStrict("${LP_REQUIRED:?database host is required}")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if got != "present" {
		t.Errorf("result = %q, want present", got)
	}
}
