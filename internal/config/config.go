// Package config loads MindEase configuration from environment variables,
// with optional .env file support for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. Collaborator settings are
// optional: a missing credential disables that collaborator rather than
// failing startup.
type Config struct {
	// Addr is the listen address for the web server.
	Addr string

	// Spotify client credentials. Both must be set to enable music search.
	SpotifyID     string
	SpotifySecret string

	// Text emotion inference endpoint and optional bearer token.
	EmotionAPIURL   string
	EmotionAPIToken string

	// Face emotion analysis endpoint.
	FaceAPIURL string

	// Speech synthesis endpoint.
	TTSAPIURL string

	// DatabaseURL enables the Postgres-backed interaction log when set;
	// otherwise ChatLog names a CSV file (default "chat_history.csv").
	DatabaseURL string
	ChatLog     string

	// RedisAddr enables the Redis-backed session store when set.
	RedisAddr string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	// Optional; ignore absence.
	_ = godotenv.Load()

	return &Config{
		Addr:            getEnv("ADDR", "127.0.0.1:8080"),
		SpotifyID:       os.Getenv("SPOTIFY_ID"),
		SpotifySecret:   os.Getenv("SPOTIFY_SECRET"),
		EmotionAPIURL:   os.Getenv("EMOTION_API_URL"),
		EmotionAPIToken: os.Getenv("EMOTION_API_TOKEN"),
		FaceAPIURL:      os.Getenv("FACE_API_URL"),
		TTSAPIURL:       os.Getenv("TTS_API_URL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ChatLog:         getEnv("CHAT_LOG", "chat_history.csv"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
	}
}

// SpotifyEnabled reports whether music search is configured.
func (c *Config) SpotifyEnabled() bool {
	return c.SpotifyID != "" && c.SpotifySecret != ""
}

// getEnv returns the environment variable's value, or fallback when unset
// or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
