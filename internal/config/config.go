package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings.
type Config struct {
	BackendURL        string
	ShareURL          string
	DataDir           string
	Profile           string
	LogLevel          string
	LogFile           string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	RecentLimit       int
}

const (
	defaultConfigPath        = "~/.config/pasta/config.toml"
	defaultDataDir           = "~/.local/share/pasta"
	defaultBackendURL        = "127.0.0.1:8080"
	defaultProfile           = "default"
	defaultLogLevel          = "info"
	defaultRequestTimeout    = 10 * time.Second
	defaultRequestsPerSecond = 5
	defaultRecentLimit       = 20
)

// Environment variables consulted after the config file.
const (
	EnvBackendURL = "PASTA_BACKEND_URL"
	EnvProfile    = "PASTA_PROFILE"
	EnvLogLevel   = "PASTA_LOG_LEVEL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BackendURL:        defaultBackendURL,
		DataDir:           mustExpand(defaultDataDir),
		Profile:           defaultProfile,
		LogLevel:          defaultLogLevel,
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
		RecentLimit:       defaultRecentLimit,
	}
}

// Load locates and parses the config file, falling back to defaults when
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer file.Close()
		if err := cfg.decode(file); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL        string  `toml:"backend_url"`
		ShareURL          string  `toml:"share_url"`
		DataDir           string  `toml:"data_dir"`
		Profile           string  `toml:"profile"`
		LogLevel          string  `toml:"log_level"`
		LogFile           string  `toml:"log_file"`
		RequestTimeout    string  `toml:"request_timeout"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
		RecentLimit       int     `toml:"recent_limit"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setString(&c.BackendURL, raw.BackendURL)
	setString(&c.ShareURL, raw.ShareURL)
	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		c.DataDir = mustExpand(dir)
	}
	setString(&c.Profile, raw.Profile)
	setString(&c.LogLevel, raw.LogLevel)
	if file := strings.TrimSpace(raw.LogFile); file != "" {
		c.LogFile = mustExpand(file)
	}
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("parse config: request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if raw.RequestsPerSecond > 0 {
		c.RequestsPerSecond = raw.RequestsPerSecond
	}
	if raw.RecentLimit > 0 {
		c.RecentLimit = raw.RecentLimit
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.BackendURL, os.Getenv(EnvBackendURL))
	setString(&c.Profile, os.Getenv(EnvProfile))
	setString(&c.LogLevel, os.Getenv(EnvLogLevel))
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	profile := strings.TrimSpace(c.Profile)
	if profile == "" {
		return fmt.Errorf("profile is empty")
	}
	if profile == "." || profile == ".." || strings.ContainsAny(profile, `/\`) {
		return fmt.Errorf("profile %q must be a plain name", c.Profile)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}

// DraftDir is the per-profile draft store directory.
func (c Config) DraftDir() string {
	return filepath.Join(c.DataDir, c.Profile)
}

// LogPath returns the log file used by the interactive editor.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "pasta.log")
}

// ShareBase returns the address share links point at. It defaults to the
// backend address, which also serves the web frontend.
func (c Config) ShareBase() string {
	base := strings.TrimSpace(c.ShareURL)
	if base == "" {
		base = c.BackendURL
	}
	if base == "" {
		base = defaultBackendURL
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return strings.TrimRight(base, "/")
}

// LoadDotEnv loads environment files without overriding variables that are
// already set. With no paths it reads ./.env when present.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		paths = []string{".env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func setString(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
