// Package config provides centralized configuration loaded from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is populated from environment variables with sensible defaults.
type Config struct {
	// Riot API
	RiotAPIKey    string
	Region        string // platform id, e.g. na1, euw1
	RatePerSecond int    // proactive client-side request budget
	RateBurst     int

	// Anthropic
	AnthropicAPIKey string
	AnthropicModel  string

	// Cache
	CacheDir     string
	MemoryTTL    time.Duration
	DiskTTL      time.Duration
	CacheEnabled bool

	// Acquisition
	Year          int // calendar year to review; 0 means the current UTC year
	MatchIDCount  int // ids requested per listing call
	MatchCeiling  int // hard cap on detail fetches per request
	TimelineCount int // timelines fetched per request

	// API server
	APIHost string
	APIPort int

	// Logging
	Debug bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("RIOT_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY must be set")
	}

	return &Config{
		RiotAPIKey:    apiKey,
		Region:        envOr("RIOT_REGION", "na1"),
		RatePerSecond: envInt("RIOT_RATE_PER_SECOND", 15),
		RateBurst:     envInt("RIOT_RATE_BURST", 15),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-haiku-4-5-20251001"),

		CacheDir:     envOr("CACHE_DIR", defaultCacheDir()),
		MemoryTTL:    time.Duration(envInt("CACHE_MEMORY_TTL_SECONDS", 300)) * time.Second,
		DiskTTL:      time.Duration(envInt("CACHE_DISK_TTL_SECONDS", 3600)) * time.Second,
		CacheEnabled: envBool("CACHE_ENABLED", true),

		Year:          envInt("REVIEW_YEAR", 0),
		MatchIDCount:  envInt("MATCH_ID_COUNT", 100),
		MatchCeiling:  envInt("MATCH_CEILING", 1000),
		TimelineCount: envInt("TIMELINE_COUNT", 10),

		APIHost: envOr("API_HOST", "0.0.0.0"),
		APIPort: envInt("API_PORT", envInt("PORT", 8000)),

		Debug: envBool("DEBUG", false),
	}, nil
}

// CacheSettings reads only the cache variables, for commands that never
// touch the Riot API and should not require a key.
func CacheSettings() (dir string, ttl time.Duration) {
	_ = godotenv.Load()
	return envOr("CACHE_DIR", defaultCacheDir()),
		time.Duration(envInt("CACHE_DISK_TTL_SECONDS", 3600)) * time.Second
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "api_cache"
	}
	return filepath.Join(home, ".riftwind", "api_cache")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
