package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with no file", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Addr != ":8080" {
			t.Errorf("addr = %s, want :8080", cfg.Server.Addr)
		}
		if cfg.Database.Path != "./data/ajo.db" {
			t.Errorf("db path = %s", cfg.Database.Path)
		}
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("log level = %s, want info", cfg.Log.Level)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := []byte("server:\n  addr: \":9090\"\ndatabase:\n  path: /tmp/other.db\njwt:\n  expiry: 1h\n")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Addr != ":9090" {
			t.Errorf("addr = %s, want :9090", cfg.Server.Addr)
		}
		if cfg.Database.Path != "/tmp/other.db" {
			t.Errorf("db path = %s", cfg.Database.Path)
		}
		// Unset fields keep their defaults.
		if cfg.JWT.Secret != "dev-secret-change-me" {
			t.Errorf("jwt secret = %s", cfg.JWT.Secret)
		}
		if cfg.TokenExpiry() != time.Hour {
			t.Errorf("expiry = %v, want 1h", cfg.TokenExpiry())
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		t.Setenv("AJO_ADDR", ":7070")
		t.Setenv("AJO_JWT_SECRET", "env-secret")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Addr != ":7070" {
			t.Errorf("addr = %s, want :7070", cfg.Server.Addr)
		}
		if cfg.JWT.Secret != "env-secret" {
			t.Errorf("jwt secret = %s, want env-secret", cfg.JWT.Secret)
		}
	})

	t.Run("port env builds the addr", func(t *testing.T) {
		t.Setenv("AJO_PORT", "6060")
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Addr != ":6060" {
			t.Errorf("addr = %s, want :6060", cfg.Server.Addr)
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("server: ["), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestTokenExpiry(t *testing.T) {
	cfg := Default()
	cfg.JWT.Expiry = "bogus"
	if got := cfg.TokenExpiry(); got != 24*time.Hour {
		t.Errorf("expiry fallback = %v, want 24h", got)
	}
}
