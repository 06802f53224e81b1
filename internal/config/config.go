package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete reserva configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls how the backend API is reached
type ServerConfig struct {
	// BaseURL is the root of the marketplace backend (no trailing slash)
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds is the per-request timeout for API calls
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// TUIConfig controls presentation details
type TUIConfig struct {
	// Currency is the symbol appended to monetary amounts (default: "€")
	Currency string `mapstructure:"currency"`
	// DateFormat is the Go reference layout used for reservation dates
	DateFormat string `mapstructure:"date_format"`
}

// SessionConfig controls session cookie persistence
type SessionConfig struct {
	// Persist saves the backend session cookie to disk so a login survives
	// process restarts. When false the session lives only in memory.
	Persist bool `mapstructure:"persist"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Timeout returns the request timeout as a time.Duration
func (s *ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 10,
		},
		TUI: TUIConfig{
			Currency:   "€",
			DateFormat: "02/01/2006",
		},
		Session: SessionConfig{
			Persist: true,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Server defaults
	viper.SetDefault("server.base_url", defaults.Server.BaseURL)
	viper.SetDefault("server.timeout_seconds", defaults.Server.TimeoutSeconds)

	// TUI defaults
	viper.SetDefault("tui.currency", defaults.TUI.Currency)
	viper.SetDefault("tui.date_format", defaults.TUI.DateFormat)

	// Session defaults
	viper.SetDefault("session.persist", defaults.Session.Persist)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reserva")
	}
	// Fall back to ~/.config/reserva
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reserva"
	}
	return filepath.Join(home, ".config", "reserva")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SessionFile returns the path where the session cookie store is persisted
func SessionFile() string {
	return filepath.Join(ConfigDir(), "session.json")
}
