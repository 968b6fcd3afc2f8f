package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig carries all service configuration, loaded once at startup.
type AppConfig struct {
	Port string

	// Outbound HTTP client timeout for Open-Meteo calls.
	HTTPTimeout time.Duration

	// Open-Meteo endpoints; empty values use the public defaults.
	ArchiveURL   string
	ForecastURL  string
	GeocodingURL string

	// Optional Google geocoding fallback.
	GoogleGeocoderAPIKey string

	// Time-to-live for memoized weather responses (0 disables the cache).
	CacheTTL time.Duration

	// Path of the JSON document holding saved field polygons.
	FieldsFile string

	// Timezone mode passed to the weather source ("auto" resolves to the
	// coordinate's local zone).
	Timezone string

	// WMO codes counted as sunny.
	SunnyCodes []int

	// Upper bound on polygon sample points (and remote fetches per action).
	MaxSamplePoints int

	// Periodic alert re-evaluation over saved fields.
	AlertInterval     time.Duration
	AlertLookbackDays int
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:                 getenvDefault("PORT", "8080"),
		ArchiveURL:           os.Getenv("OPENMETEO_ARCHIVE_URL"),
		ForecastURL:          os.Getenv("OPENMETEO_FORECAST_URL"),
		GeocodingURL:         os.Getenv("OPENMETEO_GEOCODING_URL"),
		GoogleGeocoderAPIKey: os.Getenv("GOOGLE_GEOCODER_API_KEY"),
		FieldsFile:           getenvDefault("FIELDS_FILE", "data/fields.json"),
		Timezone:             getenvDefault("WEATHER_TIMEZONE", "auto"),
		MaxSamplePoints:      getenvInt("MAX_SAMPLE_POINTS", 9),
		AlertLookbackDays:    getenvInt("ALERT_LOOKBACK_DAYS", 90),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("WEATHER_CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.AlertInterval, err = getenvDuration("ALERT_CHECK_INTERVAL", "24h"); err != nil {
		return nil, err
	}

	codes, err := parseCodes(getenvDefault("SUNNY_WEATHER_CODES", "0,1"))
	if err != nil {
		return nil, err
	}
	cfg.SunnyCodes = codes

	if cfg.MaxSamplePoints < 1 {
		return nil, fmt.Errorf("MAX_SAMPLE_POINTS must be at least 1")
	}

	return cfg, nil
}

func parseCodes(s string) ([]int, error) {
	var codes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid SUNNY_WEATHER_CODES entry %q: %w", part, err)
		}
		codes = append(codes, n)
	}
	return codes, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
