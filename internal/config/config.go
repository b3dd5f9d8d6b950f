package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Window preset day counts. "full" covers the dataset back to its 1993 start.
const (
	WindowShortDays  = 90
	WindowMediumDays = 365
	WindowFullDays   = 10000
)

// Config holds application configuration
type Config struct {
	Port                 string
	APIBaseURL           string
	APITimeout           time.Duration
	CacheTTL             time.Duration
	Population           int64
	LongWindowMinRecords int
	LogLevel             string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	timeoutSec, err := getEnvInt("DEBT_API_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	ttlHours, err := getEnvInt("DEBT_CACHE_TTL", 24)
	if err != nil {
		return nil, err
	}
	// Approximation of the US population; updated manually, not derived.
	population, err := getEnvInt("DEBT_US_POPULATION", 340000000)
	if err != nil {
		return nil, err
	}
	minRecords, err := getEnvInt("DEBT_LONG_WINDOW_MIN_RECORDS", 365)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                 getEnv("DEBT_PORT", "8080"),
		APIBaseURL:           getEnv("DEBT_API_URL", "https://api.fiscaldata.treasury.gov/services/api/fiscal_service"),
		APITimeout:           time.Duration(timeoutSec) * time.Second,
		CacheTTL:             time.Duration(ttlHours) * time.Hour,
		Population:           population,
		LongWindowMinRecords: int(minRecords),
		LogLevel:             getEnv("LOG_LEVEL", "INFO"),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("DEBT_API_URL is required")
	}
	if cfg.APITimeout <= 0 {
		return nil, fmt.Errorf("DEBT_API_TIMEOUT must be positive")
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("DEBT_CACHE_TTL must be positive")
	}
	if cfg.Population <= 0 {
		return nil, fmt.Errorf("DEBT_US_POPULATION must be positive")
	}
	if cfg.LongWindowMinRecords < 1 {
		return nil, fmt.Errorf("DEBT_LONG_WINDOW_MIN_RECORDS must be at least 1")
	}

	return cfg, nil
}

// WindowDays resolves a window preset name to its day count.
func WindowDays(name string) (int, bool) {
	switch name {
	case "short":
		return WindowShortDays, true
	case "medium", "":
		return WindowMediumDays, true
	case "full":
		return WindowFullDays, true
	}
	return 0, false
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int64) (int64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return parsed, nil
}
