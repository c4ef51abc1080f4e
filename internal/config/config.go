// Package config loads the tend configuration from
// ~/.config/tend/config.toml (or $TEND_HOME), falling back to defaults
// when the file does not exist.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	API      APIConfig      `toml:"api"`
	Kiosk    KioskConfig    `toml:"kiosk"`
}

// DatabaseConfig controls task storage.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// KioskConfig controls kiosk timing behavior. The long-press threshold
// and idle timeout belong to the input/display drivers below this
// application; they are configured here so a single file drives the whole
// device.
type KioskConfig struct {
	FeedbackMillis  int `toml:"feedback_ms"`
	LongPressMillis int `toml:"long_press_ms"`
	IdleTimeoutSecs int `toml:"idle_timeout_s"`
}

// FeedbackDelay returns the transient-feedback duration.
func (k KioskConfig) FeedbackDelay() time.Duration {
	return time.Duration(k.FeedbackMillis) * time.Millisecond
}

// Addr returns the host:port the API server listens on.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// Default returns the built-in configuration.
func Default() Config {
	home := tendHome()
	return Config{
		Database: DatabaseConfig{
			Path: filepath.Join(home, "tend.db"),
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Kiosk: KioskConfig{
			FeedbackMillis:  1500,
			LongPressMillis: 500,
			IdleTimeoutSecs: 300,
		},
	}
}

// Load reads the config file, falling back to defaults when absent.
func Load() (Config, error) {
	cfg := Default()
	path := filepath.Join(tendHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to ~/.config/tend/config.toml.
func Save(cfg Config) error {
	path := filepath.Join(tendHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func tendHome() string {
	if env := os.Getenv("TEND_HOME"); env != "" {
		return env
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".tend")
	}
	return filepath.Join(cfg, "tend")
}
