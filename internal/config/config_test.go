package config_test

import (
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/techcare/core/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Ensure environment does not interfere
	_ = os.Unsetenv("TECHCARE_DATABASE_PATH")
	_ = os.Unsetenv("TECHCARE_SESSION_PATH")
	_ = os.Unsetenv("TECHCARE_SESSION_SECRET")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.DatabasePath != "techcare.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "techcare.db")
	}
	if cfg.SessionPath != "techcare_session.db" {
		t.Fatalf("unexpected SessionPath: got %q want %q", cfg.SessionPath, "techcare_session.db")
	}
	if cfg.SessionSecret == "" {
		t.Fatalf("expected a default session secret")
	}
	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Fatalf("unexpected BcryptCost: got %d want %d", cfg.BcryptCost, bcrypt.DefaultCost)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	os.Setenv("TECHCARE_DATABASE_PATH", "/tmp/env.db")
	defer os.Unsetenv("TECHCARE_DATABASE_PATH")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.DatabasePath != "/tmp/env.db" {
		t.Fatalf("unexpected DatabasePath: got %q", cfg.DatabasePath)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	f, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	content := []byte("database_path: \"file.db\"\nsession_path: \"file_session.db\"\nsession_secret: \"filekey\"\nbcrypt_cost: 4\n")
	if err := os.WriteFile(f.Name(), content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := config.LoadConfig(f.Name())
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}

	if cfg.DatabasePath != "file.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "file.db")
	}
	if cfg.SessionPath != "file_session.db" {
		t.Fatalf("unexpected SessionPath: got %q want %q", cfg.SessionPath, "file_session.db")
	}
	if cfg.SessionSecret != "filekey" {
		t.Fatalf("unexpected SessionSecret: got %q want %q", cfg.SessionSecret, "filekey")
	}
	if cfg.BcryptCost != 4 {
		t.Fatalf("unexpected BcryptCost: got %d want 4", cfg.BcryptCost)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	f, err := os.CreateTemp("", "bad-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	if err := os.WriteFile(f.Name(), []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(f.Name()); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}
