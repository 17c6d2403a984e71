// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is constructed once at process start and threaded explicitly into
// the orchestrator, fetchers, and server.
type Config struct {
	// DatabasePath is the sqlite database file.
	DatabasePath string

	// Addr is the HTTP server listen address.
	Addr string

	SpotifyClientID     string
	SpotifyClientSecret string

	// Endpoints of the web-player scraping service.
	AlbumEndpoint  string
	TrackEndpoint  string
	ArtistEndpoint string

	// StatusCheckTrackID is the canary track polled before a daily update
	// may begin.
	StatusCheckTrackID string

	Concurrency       int
	DiscoveryAttempts int
	SyncAttempts      int
	SweepAttempts     int
	PollAttempts      int
	PollInterval      time.Duration

	LogLevel string
	LogPath  string
}

// Load reads configuration from the environment, loading a .env file first if
// one is present. Existing environment variables are never overridden.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:        getEnv("DATABASE_PATH", "streams.db"),
		Addr:                getEnv("ADDR", ":8000"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		AlbumEndpoint:       os.Getenv("ALBUM_END_POINT"),
		TrackEndpoint:       os.Getenv("TRACK_END_POINT"),
		ArtistEndpoint:      os.Getenv("ARTIST_END_POINT"),
		StatusCheckTrackID:  os.Getenv("STATUS_CHECK_SONG_ID"),
		Concurrency:         getEnvInt("SYNC_CONCURRENCY", 50),
		DiscoveryAttempts:   getEnvInt("DISCOVERY_ATTEMPTS", 13),
		SyncAttempts:        getEnvInt("SYNC_ATTEMPTS", 13),
		SweepAttempts:       getEnvInt("SWEEP_ATTEMPTS", 16),
		PollAttempts:        getEnvInt("POLL_ATTEMPTS", 96),
		PollInterval:        getEnvDuration("POLL_INTERVAL", 15*time.Minute),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogPath:             os.Getenv("LOG_PATH"),
	}

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		return nil, fmt.Errorf("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")
	}
	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration gets an environment variable as a duration or returns a
// default value.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
