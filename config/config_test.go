package config

import (
	"os"
	"testing"
)

func TestLoadEnvNoFile(t *testing.T) {
	if err := LoadEnv(); err != nil {
		t.Errorf("expected nil when .env is absent, got %v", err)
	}
}

func TestValidateEnvAllSet(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("DATABASE_URL", "postgres://localhost/fitstore_test")
	defer os.Unsetenv("JWT_SECRET")
	defer os.Unsetenv("DATABASE_URL")

	if err := ValidateEnv(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvMissingJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Setenv("DATABASE_URL", "postgres://localhost/fitstore_test")
	defer os.Unsetenv("DATABASE_URL")

	if err := ValidateEnv(); err == nil {
		t.Error("expected error for missing JWT_SECRET")
	}
}

func TestValidateEnvMissingDatabaseURL(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("JWT_SECRET")

	if err := ValidateEnv(); err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_GET_ENV_KEY", "test-value")
	defer os.Unsetenv("TEST_GET_ENV_KEY")

	if got := GetEnv("TEST_GET_ENV_KEY", "default"); got != "test-value" {
		t.Errorf("expected 'test-value', got '%s'", got)
	}

	os.Unsetenv("TEST_GET_ENV_MISSING")
	if got := GetEnv("TEST_GET_ENV_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected 'fallback', got '%s'", got)
	}
}
