package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	DataDir   string         `yaml:"data_dir" mapstructure:"data_dir"`
	DBPath    string         `yaml:"db_path" mapstructure:"db_path"`
	UserID    string         `yaml:"user_id" mapstructure:"user_id"`
	Service   ServiceConfig  `yaml:"service" mapstructure:"service"`
	Mirror    MirrorConfig   `yaml:"mirror" mapstructure:"mirror"`
	Server    ServerConfig   `yaml:"server" mapstructure:"server"`
	Reminders ReminderConfig `yaml:"reminders" mapstructure:"reminders"`
	Log       LogConfig      `yaml:"log" mapstructure:"log"`
	Session   SessionConfig  `yaml:"session" mapstructure:"session"`
}

// ServiceConfig points at the assistant backend (chat, quiz, leetcode, mirror endpoints).
type ServiceConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type MirrorConfig struct {
	Kind        string `yaml:"kind" mapstructure:"kind"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr" mapstructure:"addr"`
	TokenSecret string   `yaml:"token_secret" mapstructure:"token_secret"`
	Origins     []string `yaml:"origins" mapstructure:"origins"`
}

type ReminderConfig struct {
	Interval           time.Duration `yaml:"interval" mapstructure:"interval"`
	DedupRetentionDays int           `yaml:"dedup_retention_days" mapstructure:"dedup_retention_days"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SessionConfig controls whether the pending deadline and running quiz
// survive between process runs.
type SessionConfig struct {
	Persist bool `yaml:"persist" mapstructure:"persist"`
}

const (
	MirrorNone     = "none"
	MirrorHTTP     = "http"
	MirrorPostgres = "postgres"
)

func DefaultConfig() Config {
	return Config{
		DataDir: "~/.aria",
		UserID:  "",
		Service: ServiceConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Mirror: MirrorConfig{Kind: MirrorHTTP},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Reminders: ReminderConfig{
			Interval:           time.Hour,
			DedupRetentionDays: 90,
		},
		Log:     LogConfig{Level: "info", Format: "console"},
		Session: SessionConfig{Persist: true},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch c.Mirror.Kind {
	case MirrorNone, MirrorHTTP:
	case MirrorPostgres:
		if c.Mirror.DatabaseURL == "" {
			return fmt.Errorf("mirror.database_url is required for the postgres mirror")
		}
	default:
		return fmt.Errorf("unsupported mirror kind %q", c.Mirror.Kind)
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("service.timeout must be positive")
	}
	if c.Reminders.DedupRetentionDays < 0 {
		return fmt.Errorf("reminders.dedup_retention_days must not be negative")
	}
	return nil
}

// resolve expands ~ and derives the database path from the data dir.
func (c *Config) resolve() error {
	dir, err := expandHome(c.DataDir)
	if err != nil {
		return err
	}
	c.DataDir = dir
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "aria.db")
	}
	c.DBPath, err = expandHome(c.DBPath)
	return err
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
