// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for affinity configuration.
	DefaultConfigDir = ".affinity"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default SQLite file name inside DefaultConfigDir.
	DefaultDatabaseFile = "affinity.db"
)

// Config holds application configuration.
type Config struct {
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// Relative paths are resolved against the directory holding .affinity.
	Path string `yaml:"path,omitempty" env:"AFFINITY_DB_PATH"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty" env:"AFFINITY_LOG_LEVEL"`
	// Format is console or json.
	Format string `yaml:"format,omitempty" env:"AFFINITY_LOG_FORMAT"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from the .affinity directory in the given path.
// A missing config file yields the defaults. Environment variables override
// values from the file.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigFilePath(basePath))
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.SQLite.Path = ResolveDatabasePath(basePath, cfg.SQLite.Path)

	return cfg, nil
}

// ResolveDatabasePath returns the database path to open. An empty path
// means the default file under the config directory; relative paths are
// joined to basePath. The special ":memory:" path is kept as is.
func ResolveDatabasePath(basePath, path string) string {
	switch {
	case path == "":
		return filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)
	case path == ":memory:", filepath.IsAbs(path):
		return path
	default:
		return filepath.Join(basePath, path)
	}
}

// ConfigDir returns the path to the .affinity config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a config file exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
