// ABOUTME: Configuration loader for the weblog CLI
// ABOUTME: Loads settings from a local .env file and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Remote API
	APIURL         string
	RequestTimeout int // seconds, per-request HTTP timeout
	AllProxy       string

	// Session
	TokenPath       string
	ClearTokenOn401 bool // remove the stored token when the server rejects it

	// Cache
	CacheTTL int // seconds

	// Health polling
	HealthInterval int // seconds, for watch mode
}

func Load() (*Config, error) {
	// A .env beside the binary is a convenience for local development;
	// absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         EnsureScheme(os.Getenv("WEBLOG_API_URL")),
		RequestTimeout: getEnvInt("WEBLOG_TIMEOUT", 30),
		AllProxy:       os.Getenv("WEBLOG_ALL_PROXY"),

		TokenPath:       getEnv("WEBLOG_TOKEN_PATH", defaultTokenPath()),
		ClearTokenOn401: getEnvBool("WEBLOG_CLEAR_TOKEN_ON_401", false),

		CacheTTL:       getEnvInt("WEBLOG_CACHE_TTL", 300),
		HealthInterval: getEnvInt("WEBLOG_HEALTH_INTERVAL", 30),
	}

	for _, v := range []struct {
		name  string
		value int
	}{
		{"WEBLOG_TIMEOUT", cfg.RequestTimeout},
		{"WEBLOG_CACHE_TTL", cfg.CacheTTL},
		{"WEBLOG_HEALTH_INTERVAL", cfg.HealthInterval},
	} {
		if v.value < 1 {
			return nil, fmt.Errorf("%s must be a positive number of seconds, got %d", v.name, v.value)
		}
	}

	return cfg, nil
}

// defaultTokenPath places the session token under the user config dir,
// falling back to a dotfile in the home directory.
func defaultTokenPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "weblog", "auth.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".weblog-auth.json"
	}
	return filepath.Join(home, ".weblog-auth.json")
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// EnsureScheme adds https:// prefix if the URL has no scheme. Exported so
// URL overrides from flags get the same normalization as the environment.
func EnsureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
