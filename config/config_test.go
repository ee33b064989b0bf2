package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statuskit/weatherbar/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CACHE_DIR", t.TempDir())

	conf, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "weatherbar", conf.ServiceName)
	assert.Equal(t, []string{"ipinfo", "freeipapi", "ip-api"}, conf.ProviderOrder)
	assert.Equal(t, "https://api.open-meteo.com", conf.OpenMeteoURL)
	assert.Equal(t, "auto", conf.Timezone)
	assert.Equal(t, 1, conf.ForecastDays)
	assert.Equal(t, 10*time.Second, conf.HTTPTimeoutDuration())
	assert.True(t, conf.HistoryEnabled)
	assert.False(t, conf.UseFixedLocation())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CACHE_DIR", dir)
	t.Setenv("PROVIDER_ORDER", "ip-api, ipinfo")
	t.Setenv("TIMEZONE", "Asia/Kolkata")
	t.Setenv("HTTP_TIMEOUT", "5")
	t.Setenv("HISTORY_ENABLED", "false")

	conf, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"ip-api", "ipinfo"}, conf.ProviderOrder)
	assert.Equal(t, "Asia/Kolkata", conf.Timezone)
	assert.Equal(t, 5*time.Second, conf.HTTPTimeoutDuration())
	assert.False(t, conf.HistoryEnabled)
	assert.Equal(t, filepath.Join(dir, "weather_cache.log"), conf.CacheLogPath())
	assert.Equal(t, filepath.Join(dir, "weatherbar.log"), conf.DebugLogPath())
	assert.Equal(t, filepath.Join(dir, "weather_history.db"), conf.HistoryDBPath())
}

func TestLoadConfigFixedLocation(t *testing.T) {
	t.Setenv("CACHE_DIR", t.TempDir())
	t.Setenv("FIXED_PLACE", "Bengaluru")
	t.Setenv("FIXED_LATITUDE", "12.9716")
	t.Setenv("FIXED_LONGITUDE", "77.5946")

	conf, err := config.LoadConfig()
	require.NoError(t, err)

	assert.True(t, conf.UseFixedLocation())
	assert.Equal(t, "Bengaluru", conf.FixedPlace)
	assert.InDelta(t, 12.9716, conf.FixedLatitude, 0.0001)
	assert.InDelta(t, 77.5946, conf.FixedLongitude, 0.0001)
}
