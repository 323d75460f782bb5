package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort             string
	CricbuzzBaseURL        string
	UserAgent              string
	CacheTTLSeconds        string
	LogLevel               string
	EnableHeadlessFallback bool
}

// ScraperTimeouts holds the per-request timeout classes used against the
// upstream site. The primary page gets a longer budget than the optional
// squad candidate URLs, which are probed sequentially.
type ScraperTimeouts struct {
	PrimaryPage   time.Duration `json:"primary_page"`
	SecondaryPage time.Duration `json:"secondary_page"`
	SquadPage     time.Duration `json:"squad_page"`
}

// DefaultScraperTimeouts returns the production timeout configuration.
func DefaultScraperTimeouts() *ScraperTimeouts {
	return &ScraperTimeouts{
		PrimaryPage:   15 * time.Second,
		SecondaryPage: 10 * time.Second,
		SquadPage:     8 * time.Second,
	}
}

// GetCacheTTL returns the match-data cache TTL from environment or default.
// The default stays well under the ~30s polling cadence live-score callers
// use, so cached data never outlives a refresh window.
func (c *Config) GetCacheTTL() time.Duration {
	if c.CacheTTLSeconds == "" {
		return 20 * time.Second
	}

	seconds, err := strconv.Atoi(c.CacheTTLSeconds)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Invalid CACHE_TTL_SECONDS value: %s, using default 20 seconds", c.CacheTTLSeconds)
		return 20 * time.Second
	}

	return time.Duration(seconds) * time.Second
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:             getEnv("SERVER_PORT", "5000"),
		CricbuzzBaseURL:        getEnv("CRICBUZZ_BASE_URL", "https://www.cricbuzz.com"),
		UserAgent:              getEnv("SCRAPER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
		CacheTTLSeconds:        getEnv("CACHE_TTL_SECONDS", "20"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		EnableHeadlessFallback: getEnv("ENABLE_HEADLESS_FALLBACK", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
