// Package config loads pipeline settings from the environment with sane
// defaults for a daily crypto-news run.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// RSS settings
	FeedsConfigPath string

	// CryptoPanic settings
	CryptoPanicAPIKey  string
	CryptoPanicBaseURL string

	// Fetch settings
	UserAgent      string
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Ranking settings
	TopN          int
	MinScore      int
	MaxArticleAge time.Duration

	// Persistence
	SeenStorePath string
	OutputPath    string

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FeedsConfigPath:    "configs/feeds.yaml",
		CryptoPanicBaseURL: "https://cryptopanic.com",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		RequestTimeout: 15 * time.Second,
		RetryAttempts:  2,
		RetryDelay:     2 * time.Second,
		TopN:           10,
		MinScore:       5,
		MaxArticleAge:  24 * time.Hour,
		SeenStorePath:  "cache.json",
		OutputPath:     "news.json",
	}

	// Load from environment
	cfg.CryptoPanicAPIKey = os.Getenv("CRYPTOPANIC_API_KEY")
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.CryptoPanicBaseURL = getEnvOrDefault("CRYPTOPANIC_BASE_URL", cfg.CryptoPanicBaseURL)
	cfg.SeenStorePath = getEnvOrDefault("SEEN_STORE_PATH", cfg.SeenStorePath)
	cfg.OutputPath = getEnvOrDefault("OUTPUT_PATH", cfg.OutputPath)
	cfg.TopN = getEnvIntOrDefault("TOP_N", cfg.TopN)
	cfg.MinScore = getEnvIntOrDefault("MIN_SCORE", cfg.MinScore)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("MAX_ARTICLE_AGE_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxArticleAge = time.Duration(val) * time.Hour
		}
	}
	if ua := os.Getenv("USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.FeedsConfigPath == "" {
		return fmt.Errorf("FEEDS_CONFIG_PATH is required")
	}
	if c.TopN <= 0 {
		return fmt.Errorf("TOP_N must be positive")
	}
	if c.MinScore < 0 {
		return fmt.Errorf("MIN_SCORE must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.SeenStorePath == "" {
		return fmt.Errorf("SEEN_STORE_PATH is required")
	}
	return nil
}
