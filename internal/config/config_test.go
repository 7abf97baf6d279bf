package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1825, cfg.Data.DefaultLookbackDays)
	assert.Equal(t, 100, cfg.Data.MinDataPoints)
	assert.Equal(t, 730, cfg.Data.MinCVDataPoints)
	assert.Equal(t, 30, cfg.Data.DefaultForecastDays)
	assert.Equal(t, 7, cfg.Data.MinForecastDays)
	assert.Equal(t, 90, cfg.Data.MaxForecastDays)

	assert.True(t, cfg.Model.YearlySeasonality)
	assert.False(t, cfg.Model.WeeklySeasonality)
	assert.Equal(t, "multiplicative", cfg.Model.SeasonalityMode)

	assert.Equal(t, 365, cfg.CV.InitialDays)
	assert.Equal(t, 90, cfg.CV.PeriodDays)
	assert.Equal(t, 30, cfg.CV.HorizonDays)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 3600, cfg.Cache.DataTTLSeconds)
	assert.Equal(t, 100, cfg.Cache.MaxDataEntries)
	assert.Equal(t, 20, cfg.Cache.MaxModelEntries)
	assert.Equal(t, 50, cfg.Cache.MaxForecastEntries)

	assert.Equal(t, 700, cfg.Chart.DashboardHeight)
	assert.Equal(t, "#00D4AA", cfg.Chart.CandlestickUpColor)

	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, 1.0, cfg.API.RetryDelaySeconds)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MIN_DATA_POINTS", "200")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CV_PERIOD_DAYS", "45")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Data.MinDataPoints)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 45, cfg.CV.PeriodDays)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSectionAccess(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	chart := cfg.Section("chart")
	assert.Contains(t, chart, "dashboard_height")
	assert.Contains(t, chart, "volume_opacity")

	data := cfg.Section("data")
	assert.Contains(t, data, "min_data_points")

	// Unknown sections return an empty map, never nil.
	unknown := cfg.Section("nope")
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestLoadRejectsBadBounds(t *testing.T) {
	t.Setenv("MIN_FORECAST_DAYS", "60")
	t.Setenv("MAX_FORECAST_DAYS", "30")

	_, err := Load()
	assert.Error(t, err)
}
