package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL           = "https://api.sendpulse.com"
	DefaultHTTPTimeout      = 30 * time.Second
	DefaultTransportRetries = 1
)

type Config struct {
	APIURL       string
	UserID       string
	Secret       string
	TokenStorage string
	// TokenDSN switches the token cache from files to Postgres when set.
	TokenDSN         string
	HTTPTimeout      time.Duration
	TransportRetries int
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:           getEnv("SENDPULSE_API_URL", DefaultAPIURL),
		UserID:           os.Getenv("SENDPULSE_API_USER_ID"),
		Secret:           os.Getenv("SENDPULSE_API_SECRET"),
		TokenStorage:     os.Getenv("SENDPULSE_TOKEN_STORAGE"),
		TokenDSN:         os.Getenv("SENDPULSE_TOKEN_DSN"),
		HTTPTimeout:      DefaultHTTPTimeout,
		TransportRetries: DefaultTransportRetries,
	}

	if v := os.Getenv("SENDPULSE_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SENDPULSE_HTTP_TIMEOUT is invalid: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	if v := os.Getenv("SENDPULSE_TRANSPORT_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SENDPULSE_TRANSPORT_RETRIES is invalid: %w", err)
		}
		cfg.TransportRetries = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("SENDPULSE_API_URL is required")
	}
	if c.UserID == "" {
		return fmt.Errorf("SENDPULSE_API_USER_ID is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("SENDPULSE_API_SECRET is required")
	}
	// Storage is only needed for the file cache
	if c.TokenStorage == "" && c.TokenDSN == "" {
		return fmt.Errorf("SENDPULSE_TOKEN_STORAGE is required")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("SENDPULSE_HTTP_TIMEOUT must not be negative")
	}
	if c.TransportRetries < 1 {
		return fmt.Errorf("SENDPULSE_TRANSPORT_RETRIES must be at least 1")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
