package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load merges defaults, the global (~/.aria/config.yaml) and project
// (./.aria/config.yaml) files, then ARIA_* environment variables. An explicit
// path replaces both files and must exist.
func Load(explicitPath string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ARIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	paths := []string{GlobalPath(), ProjectPath()}
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return Config{}, fmt.Errorf("config file: %w", err)
		}
		paths = []string{explicitPath}
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("user_id", d.UserID)
	v.SetDefault("service.base_url", d.Service.BaseURL)
	v.SetDefault("service.timeout", d.Service.Timeout)
	v.SetDefault("mirror.kind", d.Mirror.Kind)
	v.SetDefault("mirror.database_url", d.Mirror.DatabaseURL)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.token_secret", d.Server.TokenSecret)
	v.SetDefault("server.origins", d.Server.Origins)
	v.SetDefault("reminders.interval", d.Reminders.Interval)
	v.SetDefault("reminders.dedup_retention_days", d.Reminders.DedupRetentionDays)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("session.persist", d.Session.Persist)
}

func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aria", "config.yaml")
}

func ProjectPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".aria", "config.yaml")
}

// fileConfig mirrors Config with durations spelled out ("30s") for humans.
type fileConfig struct {
	DataDir   string        `yaml:"data_dir"`
	DBPath    string        `yaml:"db_path,omitempty"`
	UserID    string        `yaml:"user_id,omitempty"`
	Service   fileService   `yaml:"service"`
	Mirror    MirrorConfig  `yaml:"mirror"`
	Server    ServerConfig  `yaml:"server"`
	Reminders fileReminders `yaml:"reminders"`
	Log       LogConfig     `yaml:"log"`
	Session   SessionConfig `yaml:"session"`
}

type fileService struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type fileReminders struct {
	Interval           string `yaml:"interval"`
	DedupRetentionDays int    `yaml:"dedup_retention_days"`
}

// Write serializes cfg as YAML, refusing to overwrite an existing file.
func Write(path string, cfg Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	out := fileConfig{
		DataDir:   cfg.DataDir,
		DBPath:    cfg.DBPath,
		UserID:    cfg.UserID,
		Service:   fileService{BaseURL: cfg.Service.BaseURL, Timeout: cfg.Service.Timeout.String()},
		Mirror:    cfg.Mirror,
		Server:    cfg.Server,
		Reminders: fileReminders{Interval: cfg.Reminders.Interval.String(), DedupRetentionDays: cfg.Reminders.DedupRetentionDays},
		Log:       cfg.Log,
		Session:   cfg.Session,
	}
	raw, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
