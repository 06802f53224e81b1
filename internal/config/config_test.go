package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("default base_url = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSeconds != 10 {
		t.Errorf("default timeout_seconds = %d", cfg.Server.TimeoutSeconds)
	}
	if cfg.TUI.Currency != "€" {
		t.Errorf("default currency = %q", cfg.TUI.Currency)
	}
	if !cfg.Session.Persist {
		t.Errorf("default session.persist = false, want true")
	}
	if !cfg.Logging.Enabled || cfg.Logging.Level != "info" {
		t.Errorf("default logging = %+v", cfg.Logging)
	}
}

func TestSetDefaultsAndLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.BaseURL != Default().Server.BaseURL {
		t.Errorf("loaded base_url = %q", cfg.Server.BaseURL)
	}
	if cfg.TUI.DateFormat != "02/01/2006" {
		t.Errorf("loaded date_format = %q", cfg.TUI.DateFormat)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("server.base_url", "https://api.example.test")
	viper.Set("server.timeout_seconds", 3)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.BaseURL != "https://api.example.test" {
		t.Errorf("base_url override not applied: %q", cfg.Server.BaseURL)
	}
	if got := cfg.Server.Timeout(); got != 3*time.Second {
		t.Errorf("Timeout() = %v, want 3s", got)
	}
}

func TestConfigDir_HonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	if got, want := ConfigDir(), filepath.Join("/tmp/xdg-test", "reserva"); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
	if got, want := SessionFile(), filepath.Join("/tmp/xdg-test", "reserva", "session.json"); got != want {
		t.Errorf("SessionFile() = %q, want %q", got, want)
	}
}
