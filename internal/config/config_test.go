package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path == "" {
		t.Fatal("expected a default database path")
	}
	if !cfg.Notifications.Desktop || !cfg.Notifications.RequestOnStart {
		t.Fatalf("expected desktop notifications on by default: %#v", cfg.Notifications)
	}
	if cfg.Backup.Dir != "." {
		t.Fatalf("expected default backup dir '.', got %q", cfg.Backup.Dir)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := []byte("database:\n  path: /tmp/custom.db\nnotifications:\n  desktop: false\n")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/tmp/custom.db" {
		t.Fatalf("file override not applied: %q", cfg.Database.Path)
	}
	if cfg.Notifications.Desktop {
		t.Fatal("file override must disable desktop notifications")
	}
	if !cfg.Notifications.RequestOnStart {
		t.Fatal("unset keys must keep their defaults")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backup:\n  dir: /from/file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REMINDD_BACKUP_DIR", "/from/env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backup.Dir != "/from/env" {
		t.Fatalf("env override not applied: %q", cfg.Backup.Dir)
	}
}

func TestLoadEnvOverridesMultiWordKey(t *testing.T) {
	t.Setenv("REMINDD_NOTIFICATIONS_REQUEST_ON_START", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Notifications.RequestOnStart {
		t.Fatal("env override must disable request_on_start")
	}
	if !cfg.Notifications.Desktop {
		t.Fatal("unrelated keys must keep their defaults")
	}
}
