package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "devconnect")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("JWT_SECRET", "unit-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "3001" {
		t.Fatalf("expected default port 3001, got %q", cfg.App.HTTPPort)
	}
	if cfg.JWT.ExpiresIn != 3600*time.Second {
		t.Fatalf("expected default 3600s expiry, got %s", cfg.JWT.ExpiresIn)
	}
	if cfg.Redis.TTL != 600*time.Second {
		t.Fatalf("expected default redis TTL, got %s", cfg.Redis.TTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET named in error, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_EXPIRES_IN", "7200")
	t.Setenv("DB_POOL_MAX_CONNS", "16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.App.HTTPPort)
	}
	if cfg.JWT.ExpiresIn != 7200*time.Second {
		t.Fatalf("expected 7200s expiry, got %s", cfg.JWT.ExpiresIn)
	}
	if cfg.Database.PoolMaxConns != 16 {
		t.Fatalf("expected pool max conns 16, got %d", cfg.Database.PoolMaxConns)
	}
}
