// Package config loads runtime configuration from defaults, an optional
// YAML file, and REMINDD_-prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Database      DatabaseConfig      `koanf:"database"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Backup        BackupConfig        `koanf:"backup"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type NotificationsConfig struct {
	// Desktop enables the notify-send/osascript notifier; off means the
	// dispatcher never delivers anything.
	Desktop bool `koanf:"desktop"`
	// RequestOnStart resolves a "default" permission state at startup.
	RequestOnStart bool `koanf:"request_on_start"`
}

type BackupConfig struct {
	// Dir is where exports land by default; imports are read relative to
	// the working directory.
	Dir string `koanf:"dir"`
}

// Load reads configuration. configPath may be empty; the default file
// location is ~/.remindd/config.yaml and a missing file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(homeDir(), ".remindd", "config.yaml")
	}
	configPath = expandPath(configPath)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("REMINDD_", ".", func(s string) string {
		// Sections are single words, so only the first underscore is a
		// separator; the rest belong to the key (request_on_start).
		key := strings.ToLower(strings.TrimPrefix(s, "REMINDD_"))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Backup.Dir = expandPath(cfg.Backup.Dir)
	return &cfg, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
