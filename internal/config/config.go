package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	DriverRedis = "redis"
	DriverAzure = "azure"
)

// Environment overrides
const (
	EnvConfigPath      = "MADBOARD_CONFIG"
	EnvThemeFile       = "MADBOARD_THEME_FILE"
	EnvRedisURL        = "MADBOARD_REDIS_URL"
	EnvAzureConnection = "MADBOARD_AZURE_CONNECTION_STRING"
)

// Config represents the application configuration
type Config struct {
	Store       StoreConfig  `yaml:"store"`
	Mirror      MirrorConfig `yaml:"mirror"`
	Log         LogConfig    `yaml:"log"`
	Server      ServerConfig `yaml:"server"`
	ColorScheme ColorScheme  `yaml:"theme"`
}

// StoreConfig selects and configures the hosted document store
type StoreConfig struct {
	Driver    string `yaml:"driver"`
	RedisURL  string `yaml:"redis_url"`
	KeyPrefix string `yaml:"key_prefix"`

	AzureConnectionString string `yaml:"azure_connection_string"`
	AzureTable            string `yaml:"azure_table"`
}

// MirrorConfig configures the local snapshot of the open board
type MirrorConfig struct {
	Path string `yaml:"path"` // Empty means ~/.madboard/mirror.db
}

// LogConfig configures the log file
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a config with every field set to its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Validate checks the fields that have no safe default
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis driver")
		}
	case DriverAzure:
		if c.Store.AzureConnectionString == "" {
			return fmt.Errorf("store.azure_connection_string is required for the azure driver (or set %s)", EnvAzureConnection)
		}
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.Store.Driver, DriverRedis, DriverAzure)
	}
	return nil
}

// loadThemeFile loads and merges theme from MADBOARD_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv applies environment overrides for connection settings
func applyEnv(config *Config) {
	if url := os.Getenv(EnvRedisURL); url != "" {
		config.Store.RedisURL = url
	}
	if conn := os.Getenv(EnvAzureConnection); conn != "" {
		config.Store.AzureConnectionString = conn
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	config := &Config{}

	configPath, err := getConfigPath()
	if err == nil {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	loadThemeFile(config)
	applyEnv(config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// The file may carry a connection string
	return os.WriteFile(configPath, data, 0o600)
}

// Path returns the path the config is loaded from
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "madboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "madboard", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = DriverRedis
	}
	if c.Store.RedisURL == "" {
		c.Store.RedisURL = "redis://localhost:6379/0"
	}
	if c.Store.KeyPrefix == "" {
		c.Store.KeyPrefix = "madboard"
	}
	if c.Store.AzureTable == "" {
		c.Store.AzureTable = "madboard"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	c.ColorScheme.ApplyDefaults()
}
