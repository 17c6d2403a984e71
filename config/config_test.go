package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("got addr '%s'", cfg.Addr)
	}
	if cfg.DatabasePath != "streams.db" {
		t.Errorf("got database path '%s'", cfg.DatabasePath)
	}
	if cfg.Concurrency != 50 || cfg.SyncAttempts != 13 || cfg.SweepAttempts != 16 {
		t.Errorf("got sync options %d/%d/%d", cfg.Concurrency, cfg.SyncAttempts, cfg.SweepAttempts)
	}
	if cfg.PollInterval != 15*time.Minute {
		t.Errorf("got poll interval %v", cfg.PollInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("ADDR", ":9999")
	t.Setenv("SYNC_CONCURRENCY", "5")
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("SYNC_ATTEMPTS", "not a number")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("got addr '%s'", cfg.Addr)
	}
	if cfg.Concurrency != 5 {
		t.Errorf("got concurrency %d", cfg.Concurrency)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("got poll interval %v", cfg.PollInterval)
	}
	if cfg.SyncAttempts != 13 {
		t.Errorf("got sync attempts %d, want the fallback for a bad value", cfg.SyncAttempts)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("expected error without credentials")
	}
}
