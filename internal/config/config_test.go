package config

import (
	"os"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Database.Path == "" {
		t.Fatal("empty database path")
	}
	if cfg.Kiosk.FeedbackDelay() != 1500*time.Millisecond {
		t.Fatalf("feedback delay = %v, want 1.5s", cfg.Kiosk.FeedbackDelay())
	}
	if cfg.API.Addr() != "0.0.0.0:8080" {
		t.Fatalf("addr = %s", cfg.API.Addr())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TEND_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.API.Port)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("TEND_HOME", t.TempDir())

	cfg := Default()
	cfg.API.Port = 9999
	cfg.Kiosk.FeedbackMillis = 2000
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.API.Port != 9999 {
		t.Fatalf("port = %d, want 9999", got.API.Port)
	}
	if got.Kiosk.FeedbackMillis != 2000 {
		t.Fatalf("feedback_ms = %d, want 2000", got.Kiosk.FeedbackMillis)
	}
}

func TestTendHomeEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEND_HOME", dir)
	if got := tendHome(); got != dir {
		t.Fatalf("tendHome = %s, want %s", got, dir)
	}
	os.Unsetenv("TEND_HOME")
	if got := tendHome(); got == "" {
		t.Fatal("tendHome should fall back to the user config dir")
	}
}
