// Package config loads settings from, in increasing priority: flag
// defaults, a YAML file, a .env file, NEVERFORGET_* environment variables
// and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	envPrefix = "NEVERFORGET_"
	appDir    = "neverforget"

	DefaultStudyLimit = 15
)

// Config holds every setting the program reads.
type Config struct {
	File     string         `koanf:"config"`
	Database DatabaseConfig `koanf:"database"`
	Study    StudyConfig    `koanf:"study"`
	Log      LogConfig      `koanf:"log"`
	Import   ImportConfig   `koanf:"import"`
}

type DatabaseConfig struct {
	// URL is a postgres:// URL or a SQLite file path.
	URL string `koanf:"url" validate:"required"`
}

type StudyConfig struct {
	DefaultLimit int `koanf:"default_limit" validate:"min=1"`
}

type LogConfig struct {
	Mode  string `koanf:"mode" validate:"oneof=dev prod"`
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

type ImportConfig struct {
	// ReposDir is where git import sources are checked out.
	ReposDir string `koanf:"repos_dir" validate:"required"`
}

// Dir is the directory holding the config file and default database.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appDir)
}

// DefaultPath is the config file used when --config is not given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultDatabaseURL is the SQLite file used when nothing is configured.
func DefaultDatabaseURL() string {
	return filepath.Join(Dir(), "neverforget.db")
}

// RegisterFlags adds the configuration flags and their defaults to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", DefaultPath(), "path to the YAML config file")
	flags.String("database.url", DefaultDatabaseURL(), "database URL (postgres://...) or SQLite file path")
	flags.Int("study.default_limit", DefaultStudyLimit, "largest session size suggested when studying")
	flags.String("log.mode", "dev", "log encoding: dev or prod")
	flags.String("log.level", "warn", "log level: debug, info, warn or error")
	flags.String("import.repos_dir", filepath.Join(Dir(), "repos"), "where git import sources are cloned")
}

// Load builds the configuration from every source. flags must have been
// prepared with RegisterFlags and parsed.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps NEVERFORGET_STUDY__DEFAULT_LIMIT to study.default_limit.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

// Validate checks the configuration values.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SaveDatabaseURL stores url as database.url in the YAML file at path,
// keeping whatever else the file already holds. Overrides that came from
// flags or the environment are not written.
func SaveDatabaseURL(path, url string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := k.Set("database.url", url); err != nil {
		return fmt.Errorf("failed to set database.url: %w", err)
	}

	b, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
