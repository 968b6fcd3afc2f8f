// Package meteo implements the weather source adapter for the Open-Meteo
// archive and forecast APIs, plus place-name geocoding and a TTL response
// cache that can be layered over the source.
package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Hourly variables requested from the archive endpoint.
var archiveHourlyVars = []string{
	"temperature_2m", "relative_humidity_2m", "dew_point_2m",
	"apparent_temperature", "precipitation", "rain", "snowfall",
	"surface_pressure", "wind_speed_10m", "wind_gusts_10m", "wind_direction_10m",
}

// Hourly variables requested from the forecast endpoint (no rain/snowfall split).
var forecastHourlyVars = []string{
	"temperature_2m", "relative_humidity_2m", "dew_point_2m",
	"apparent_temperature", "precipitation", "surface_pressure",
	"wind_speed_10m", "wind_gusts_10m", "wind_direction_10m",
}

var dailyVars = []string{
	"temperature_2m_max", "temperature_2m_min", "precipitation_sum",
	"wind_speed_10m_max", "weathercode",
}

// Source abstracts the weather data source so the pipeline and tests can
// substitute implementations (e.g. the caching layer or a fixture source).
type Source interface {
	FetchArchive(ctx context.Context, lat, lon float64, start, end, tz string) (*Payload, error)
	FetchForecast(ctx context.Context, lat, lon float64, days int, tz string) (*Payload, error)
}

// OpenMeteoSource is the HTTP client for the Open-Meteo archive and forecast
// APIs. Neither endpoint requires an API key.
type OpenMeteoSource struct {
	archiveURL  string
	forecastURL string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

// NewOpenMeteoSource creates a source using the given HTTP client. Empty URLs
// fall back to the public Open-Meteo endpoints.
func NewOpenMeteoSource(client *http.Client, archiveURL, forecastURL string) *OpenMeteoSource {
	if archiveURL == "" {
		archiveURL = "https://archive-api.open-meteo.com/v1/archive"
	}
	if forecastURL == "" {
		forecastURL = "https://api.open-meteo.com/v1/forecast"
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoSource{
		archiveURL:  archiveURL,
		forecastURL: forecastURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// FetchArchive retrieves historical hourly and daily series for a coordinate
// and date range (dates in YYYY-MM-DD form).
func (s *OpenMeteoSource) FetchArchive(ctx context.Context, lat, lon float64, start, end, tz string) (*Payload, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("start_date", start)
	values.Set("end_date", end)
	values.Set("hourly", joinVars(archiveHourlyVars))
	values.Set("daily", joinVars(dailyVars))
	values.Set("timezone", tzOrAuto(tz))

	payload, err := s.get(ctx, s.archiveURL, values)
	if err != nil {
		return nil, fmt.Errorf("%w: archive fetch at (%.4f, %.4f): %v", ErrSourceUnavailable, lat, lon, err)
	}
	if payload.Empty() {
		return nil, fmt.Errorf("%w: archive at (%.4f, %.4f) %s..%s", ErrNoData, lat, lon, start, end)
	}
	return payload, nil
}

// FetchForecast retrieves a short-range forecast for a coordinate.
func (s *OpenMeteoSource) FetchForecast(ctx context.Context, lat, lon float64, days int, tz string) (*Payload, error) {
	if days <= 0 {
		days = 5
	}

	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("hourly", joinVars(forecastHourlyVars))
	values.Set("daily", joinVars(dailyVars))
	values.Set("forecast_days", strconv.Itoa(days))
	values.Set("timezone", tzOrAuto(tz))

	payload, err := s.get(ctx, s.forecastURL, values)
	if err != nil {
		return nil, fmt.Errorf("%w: forecast fetch at (%.4f, %.4f): %v", ErrSourceUnavailable, lat, lon, err)
	}
	if payload.Empty() {
		return nil, fmt.Errorf("%w: forecast at (%.4f, %.4f)", ErrNoData, lat, lon)
	}
	return payload, nil
}

func (s *OpenMeteoSource) get(ctx context.Context, baseURL string, values url.Values) (*Payload, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %v", err)
	}
	return &payload, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func tzOrAuto(tz string) string {
	if tz == "" {
		return "auto"
	}
	return tz
}

func joinVars(vars []string) string {
	return strings.Join(vars, ",")
}
