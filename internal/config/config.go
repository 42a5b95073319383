// Package config provides configuration management for The Prob engine.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	// Kalshi API credentials. Empty key ID means unsigned requests, which
	// the public market list endpoint tolerates.
	KalshiKeyID          string
	KalshiPrivateKeyPEM  string
	KalshiPrivateKeyPath string

	// LLM settings for the copy generator (OpenAI-compatible endpoint).
	LLMAPIKey   string
	LLMEndpoint string
	LLMModel    string

	// MongoDB run archive (daemon mode only).
	MongoURI    string
	MongoDB     string
	ArchiveRuns bool

	// Pipeline settings
	ArtifactPath string
	NewsPath     string
	FetchTimeout time.Duration

	// Scheduler settings (daemon mode)
	RefreshInterval time.Duration
	NewsInterval    time.Duration

	// Server settings
	HTTPAddr string
	Debug    bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		KalshiKeyID:          getEnv("KALSHI_KEY_ID", ""),
		KalshiPrivateKeyPEM:  getEnv("KALSHI_PRIVATE_KEY", ""),
		KalshiPrivateKeyPath: getEnv("KALSHI_PRIVATE_KEY_PATH", ""),

		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMEndpoint: getEnv("LLM_ENDPOINT", ""),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o-mini"),

		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "theprob"),
		ArchiveRuns: getEnvBool("ARCHIVE_RUNS", false),

		ArtifactPath: getEnv("ARTIFACT_PATH", "data/markets.json"),
		NewsPath:     getEnv("NEWS_PATH", "data/news.json"),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 15*time.Second),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 6*time.Hour),
		NewsInterval:    getEnvDuration("NEWS_INTERVAL", 6*time.Hour),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Debug:    getEnvBool("DEBUG", false),
	}

	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *Config) Validate() error {
	if c.LLMAPIKey == "" {
		log.Warn().Msg("LLM_API_KEY not set, copy generation will use templated fallbacks")
	}
	if c.KalshiKeyID == "" {
		log.Warn().Msg("KALSHI_KEY_ID not set, Kalshi requests will be unsigned")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
