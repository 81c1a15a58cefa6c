// Package common provides shared utilities for Augur
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Augur
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Forecast    ForecastConfig `toml:"forecast"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host" validate:"required"`
	Port int    `toml:"port" validate:"min=1,max=65535"`
}

// StorageConfig holds paths for the two storage areas.
type StorageConfig struct {
	Models    AreaConfig `toml:"models"`    // StockModelRecord table (BadgerHold)
	Artifacts AreaConfig `toml:"artifacts"` // Serialized model snapshots (JSON files)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path" validate:"required"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo YahooConfig `toml:"yahoo"`
}

// YahooConfig holds Yahoo Finance API configuration
type YahooConfig struct {
	BaseURL       string `toml:"base_url" validate:"required,url"`
	RateLimit     int    `toml:"rate_limit" validate:"min=1"`
	Timeout       string `toml:"timeout"`
	SearchTimeout string `toml:"search_timeout"`
	UserAgent     string `toml:"user_agent"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetSearchTimeout parses and returns the search timeout duration
func (c *YahooConfig) GetSearchTimeout() time.Duration {
	d, err := time.ParseDuration(c.SearchTimeout)
	if err != nil {
		return 8 * time.Second
	}
	return d
}

// ForecastConfig holds symbol resolution and training configuration.
// Suffixes are probed in order after the raw symbol comes up empty.
type ForecastConfig struct {
	Suffixes    []string `toml:"suffixes" validate:"required,min=1,dive,startswith=."`
	WarmSymbols []string `toml:"warm_symbols"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Storage: StorageConfig{
			Models:    AreaConfig{Path: "data/models"},
			Artifacts: AreaConfig{Path: "data/artifacts"},
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:       "https://query1.finance.yahoo.com",
				RateLimit:     5,
				Timeout:       "30s",
				SearchTimeout: "8s",
				UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			},
		},
		Forecast: ForecastConfig{
			Suffixes: []string{".NS", ".BO", ".L", ".TO", ".AX"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks the config against its validation tags.
func (c *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("AUGUR_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("AUGUR_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("AUGUR_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("AUGUR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("AUGUR_DATA_PATH"); path != "" {
		config.Storage.Models.Path = filepath.Join(path, "models")
		config.Storage.Artifacts.Path = filepath.Join(path, "artifacts")
	}

	if suffixes := os.Getenv("AUGUR_SUFFIXES"); suffixes != "" {
		parts := strings.Split(suffixes, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			config.Forecast.Suffixes = cleaned
		}
	}

	if symbols := os.Getenv("AUGUR_WARM_SYMBOLS"); symbols != "" {
		parts := strings.Split(symbols, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, strings.ToUpper(p))
			}
		}
		config.Forecast.WarmSymbols = cleaned
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
