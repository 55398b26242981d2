// ABOUTME: Configuration loader for the dexshare CLI
// ABOUTME: Loads Share credentials and client settings from environment variables

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Region selects one of the predefined Share endpoints.
const (
	RegionUS    = "us"
	RegionNonUS = "ous"
)

type Config struct {
	// Share account
	Username string
	Password string

	// Endpoint selection: ServerURL wins when set, otherwise Region
	// picks one of the predefined endpoints (default: us).
	ServerURL string
	Region    string

	// Client behavior
	HTTPTimeout int // seconds, default 30
	MaxRetries  int // re-login retries per fetch, default 2
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// HasCredentials returns true if both username and password are set.
// The CLI prompts interactively when they are not.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

func Load() (*Config, error) {
	cfg := &Config{
		Username:    os.Getenv("SHARE_USERNAME"),
		Password:    os.Getenv("SHARE_PASSWORD"),
		ServerURL:   ensureScheme(os.Getenv("SHARE_SERVER_URL")),
		Region:      getEnv("SHARE_REGION", RegionUS),
		HTTPTimeout: getEnvInt("SHARE_HTTP_TIMEOUT", 30),
		MaxRetries:  getEnvInt("SHARE_MAX_RETRIES", 2),
	}

	if cfg.ServerURL == "" && cfg.Region != RegionUS && cfg.Region != RegionNonUS {
		return nil, fmt.Errorf("SHARE_REGION must be %q or %q, got %q", RegionUS, RegionNonUS, cfg.Region)
	}
	if cfg.HTTPTimeout < 1 || cfg.HTTPTimeout > 600 {
		return nil, fmt.Errorf("SHARE_HTTP_TIMEOUT must be between 1 and 600, got %d", cfg.HTTPTimeout)
	}
	if cfg.MaxRetries < 0 || cfg.MaxRetries > 10 {
		return nil, fmt.Errorf("SHARE_MAX_RETRIES must be between 0 and 10, got %d", cfg.MaxRetries)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
