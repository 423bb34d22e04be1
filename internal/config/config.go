package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "CLUBHOUSE_"

// CSVConfig controls the team list export
type CSVConfig struct {
	// Locale selects the header labels. Valid values are "zh" and "en".
	Locale string `env:"LOCALE" yaml:"locale"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Level is the minimum level written. Valid values are "debug", "info", "warn" and "error".
	Level string `env:"LEVEL" yaml:"level"`

	// Path to a file to write logs to.
	// If not set, logs go to the state directory.
	Path string `env:"PATH" yaml:"path"`
}

// HTTPConfig is the configuration for the JSON API.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// AllowedOrigins lists the CORS origins. Empty allows any origin.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," yaml:"allowed_origins"`
}

// BackupConfig points database exports at an S3-compatible bucket.
type BackupConfig struct {
	Endpoint        string `env:"ENDPOINT" yaml:"endpoint"`
	Region          string `env:"REGION" yaml:"region"`
	Bucket          string `env:"BUCKET" yaml:"bucket"`
	AccessKeyID     string `env:"ACCESS_KEY_ID" yaml:"access_key_id"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY" yaml:"secret_access_key"`
	Prefix          string `env:"PREFIX" yaml:"prefix"`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL" yaml:"public_base_url"`
}

// Enabled reports whether enough is configured to attempt an upload
func (b BackupConfig) Enabled() bool {
	return b.Bucket != ""
}

// Config represents the application configuration
type Config struct {
	// Database is the file opened when no --db flag is given.
	Database string `env:"DATABASE" yaml:"database"`

	// LogoSize is the edge length in pixels of replaced logos.
	LogoSize int `env:"LOGO_SIZE" yaml:"logo_size"`

	CSV    CSVConfig    `envPrefix:"CSV_" yaml:"csv"`
	Log    LogConfig    `envPrefix:"LOG_" yaml:"log"`
	HTTP   HTTPConfig   `envPrefix:"HTTP_" yaml:"http"`
	Backup BackupConfig `envPrefix:"BACKUP_" yaml:"backup"`

	ColorScheme ColorScheme `yaml:"theme"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile loads and merges theme from CLUBHOUSE_THEME_FILE
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvPrefix + "THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Warn("failed to read theme file", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}
	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		slog.Warn("failed to parse theme file", "path", themeFile, "error", err)
		return
	}
	config.ColorScheme = themeConfig.Theme
}

// Load builds the config from, in increasing precedence: defaults, the
// config file, a .env file in the working directory, and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var config Config
	configPath, err := getConfigPath()
	if err == nil {
		if err := parseFile(&config, configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// Load theme from CLUBHOUSE_THEME_FILE if set
	loadThemeFile(&config)

	if err := env.ParseWithOptions(&config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment variables: %w", err)
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Credentials can end up in here
	return os.WriteFile(configPath, data, 0o600)
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch c.CSV.Locale {
	case "zh", "en":
	default:
		return fmt.Errorf("invalid csv locale %q (want zh or en)", c.CSV.Locale)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q (want text, json or logfmt)", c.Log.Format)
	}
	if c.LogoSize <= 0 {
		return fmt.Errorf("invalid logo size %d", c.LogoSize)
	}
	return nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "clubhouse", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "clubhouse", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = "database.db"
	}
	if c.LogoSize == 0 {
		c.LogoSize = 128
	}
	if c.CSV.Locale == "" {
		c.CSV.Locale = "zh"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = "localhost:8080"
	}
	if c.Backup.Region == "" {
		c.Backup.Region = "auto"
	}
	if c.Backup.Prefix == "" {
		c.Backup.Prefix = "clubhouse"
	}
	c.ColorScheme.ApplyDefaults()
}
