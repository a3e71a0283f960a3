package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort         = 8080
	defaultValueField   = "P1"
	defaultFetchTimeout = 30 * time.Second
)

// Config holds environment-driven settings for the dashboard service.
type Config struct {
	CatalogURL        string
	DataBaseURL       string
	DataDir           string
	SensorsConfigPath string
	ValueField        string
	FetchTimeout      time.Duration
	Port              int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		ValueField:   defaultValueField,
		FetchTimeout: defaultFetchTimeout,
		Port:         defaultPort,
	}

	cfg.CatalogURL = strings.TrimSpace(os.Getenv("CATALOG_URL"))
	if cfg.CatalogURL == "" {
		return cfg, errors.New("CATALOG_URL is required")
	}

	cfg.DataBaseURL = strings.TrimSpace(os.Getenv("DATA_BASE_URL"))
	if cfg.DataBaseURL == "" {
		return cfg, errors.New("DATA_BASE_URL is required")
	}

	cfg.DataDir = strings.TrimSpace(os.Getenv("DATA_DIR"))
	cfg.SensorsConfigPath = strings.TrimSpace(os.Getenv("SENSORS_CONFIG_PATH"))

	if field := strings.TrimSpace(os.Getenv("VALUE_FIELD")); field != "" {
		cfg.ValueField = field
	}

	if v := strings.TrimSpace(os.Getenv("FETCH_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
		}
		cfg.FetchTimeout = d
	}

	if portStr := strings.TrimSpace(os.Getenv("PORT")); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DataURL resolves a catalog data path against the data base URL.
// Absolute URLs pass through untouched.
func (c Config) DataURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.DataBaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
