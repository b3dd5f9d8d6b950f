package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.fiscaldata.treasury.gov/services/api/fiscal_service", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, int64(340000000), cfg.Population)
	assert.Equal(t, 365, cfg.LongWindowMinRecords)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("DEBT_PORT", "9090")
	t.Setenv("DEBT_API_TIMEOUT", "5")
	t.Setenv("DEBT_US_POPULATION", "1000")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, int64(1000), cfg.Population)
}

func TestNewConfigRejectsMalformedInt(t *testing.T) {
	t.Setenv("DEBT_CACHE_TTL", "soon")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigRejectsNonPositiveValues(t *testing.T) {
	t.Setenv("DEBT_US_POPULATION", "0")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestWindowDays(t *testing.T) {
	days, ok := WindowDays("short")
	require.True(t, ok)
	assert.Equal(t, WindowShortDays, days)

	days, ok = WindowDays("medium")
	require.True(t, ok)
	assert.Equal(t, WindowMediumDays, days)

	days, ok = WindowDays("full")
	require.True(t, ok)
	assert.Equal(t, WindowFullDays, days)

	// Absent parameter falls back to the medium window.
	days, ok = WindowDays("")
	require.True(t, ok)
	assert.Equal(t, WindowMediumDays, days)

	_, ok = WindowDays("decade")
	assert.False(t, ok)
}
