package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string

	ProviderOrder []string
	IPInfoURL     string
	FreeIPAPIURL  string
	IPAPIURL      string

	OpenMeteoURL string
	Timezone     string
	ForecastDays int

	HTTPTimeout int32

	CacheDir     string
	CacheLogName string
	DebugLogName string

	HistoryEnabled bool
	HistoryDBName  string

	LogLevel string

	// Fixed-location override. When FixedPlace is set the location
	// resolver is bypassed entirely.
	FixedPlace     string
	FixedLatitude  float64
	FixedLongitude float64
}

func LoadConfig() (*Config, error) {
	// A .env next to the binary is optional; real deployments use plain
	// environment variables set by the bar's exec config.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weatherbar")

	v.SetDefault("PROVIDER_ORDER", "ipinfo,freeipapi,ip-api")
	v.SetDefault("IPINFO_URL", "https://ipinfo.io")
	v.SetDefault("FREEIPAPI_URL", "https://freeipapi.com")
	v.SetDefault("IPAPI_URL", "https://ip-api.com")

	v.SetDefault("OPEN_METEO_URL", "https://api.open-meteo.com")
	v.SetDefault("TIMEZONE", "auto")
	v.SetDefault("FORECAST_DAYS", 1)

	v.SetDefault("HTTP_TIMEOUT", 10)

	v.SetDefault("CACHE_LOG_NAME", "weather_cache.log")
	v.SetDefault("DEBUG_LOG_NAME", "weatherbar.log")

	v.SetDefault("HISTORY_ENABLED", true)
	v.SetDefault("HISTORY_DB_NAME", "weather_history.db")

	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	cacheDir := v.GetString("CACHE_DIR")
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine user cache directory: %w", err)
		}
		cacheDir = filepath.Join(base, "weatherbar")
	}

	config := &Config{
		ServiceName:    v.GetString("SERVICE_NAME"),
		ProviderOrder:  splitList(v.GetString("PROVIDER_ORDER")),
		IPInfoURL:      v.GetString("IPINFO_URL"),
		FreeIPAPIURL:   v.GetString("FREEIPAPI_URL"),
		IPAPIURL:       v.GetString("IPAPI_URL"),
		OpenMeteoURL:   v.GetString("OPEN_METEO_URL"),
		Timezone:       v.GetString("TIMEZONE"),
		ForecastDays:   v.GetInt("FORECAST_DAYS"),
		HTTPTimeout:    v.GetInt32("HTTP_TIMEOUT"),
		CacheDir:       cacheDir,
		CacheLogName:   v.GetString("CACHE_LOG_NAME"),
		DebugLogName:   v.GetString("DEBUG_LOG_NAME"),
		HistoryEnabled: v.GetBool("HISTORY_ENABLED"),
		HistoryDBName:  v.GetString("HISTORY_DB_NAME"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		FixedPlace:     v.GetString("FIXED_PLACE"),
		FixedLatitude:  v.GetFloat64("FIXED_LATITUDE"),
		FixedLongitude: v.GetFloat64("FIXED_LONGITUDE"),
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (c *Config) CacheLogPath() string {
	return filepath.Join(c.CacheDir, c.CacheLogName)
}

func (c *Config) DebugLogPath() string {
	return filepath.Join(c.CacheDir, c.DebugLogName)
}

func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.CacheDir, c.HistoryDBName)
}

func (c *Config) UseFixedLocation() bool {
	return c.FixedPlace != ""
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
