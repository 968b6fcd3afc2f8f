package meteo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const archiveFixture = `{
	"latitude": 40.0,
	"longitude": 38.0,
	"timezone": "Europe/Istanbul",
	"hourly": {
		"time": ["2024-06-01T00:00", "2024-06-01T01:00"],
		"temperature_2m": [15.2, null],
		"precipitation": [0.0, 0.4]
	},
	"daily": {
		"time": ["2024-06-01"],
		"temperature_2m_max": [27.1],
		"temperature_2m_min": [14.3],
		"precipitation_sum": [0.4],
		"weathercode": [61]
	}
}`

func TestFetchArchive(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"start_date": q.Get("start_date"),
			"end_date":   q.Get("end_date"),
			"timezone":   q.Get("timezone"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(archiveFixture))
	}))
	defer server.Close()

	src := NewOpenMeteoSource(server.Client(), server.URL, server.URL)
	payload, err := src.FetchArchive(context.Background(), 40.0, 38.0, "2024-06-01", "2024-06-01", "")
	if err != nil {
		t.Fatalf("fetch archive: %v", err)
	}

	if gotQuery["start_date"] != "2024-06-01" || gotQuery["end_date"] != "2024-06-01" {
		t.Errorf("date range not forwarded: %v", gotQuery)
	}
	if gotQuery["timezone"] != "auto" {
		t.Errorf("empty timezone should request auto, got %q", gotQuery["timezone"])
	}

	if payload.Hourly == nil || len(payload.Hourly.Time) != 2 {
		t.Fatalf("hourly block missing or short: %+v", payload.Hourly)
	}
	if payload.Hourly.Temperature2m[1] != nil {
		t.Errorf("JSON null should decode to nil, got %v", *payload.Hourly.Temperature2m[1])
	}
	if payload.Daily == nil || len(payload.Daily.Time) != 1 {
		t.Fatalf("daily block missing: %+v", payload.Daily)
	}
	if payload.Daily.WeatherCode[0] == nil || *payload.Daily.WeatherCode[0] != 61 {
		t.Errorf("weathercode not decoded: %v", payload.Daily.WeatherCode)
	}
}

func TestFetchForecastDays(t *testing.T) {
	var gotDays string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDays = r.URL.Query().Get("forecast_days")
		w.Write([]byte(archiveFixture))
	}))
	defer server.Close()

	src := NewOpenMeteoSource(server.Client(), server.URL, server.URL)
	if _, err := src.FetchForecast(context.Background(), 40.0, 38.0, 0, "auto"); err != nil {
		t.Fatalf("fetch forecast: %v", err)
	}
	if gotDays != "5" {
		t.Errorf("forecast_days = %q, want default 5", gotDays)
	}
}

func TestFetchArchiveNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latitude": 40.0, "longitude": 38.0}`))
	}))
	defer server.Close()

	src := NewOpenMeteoSource(server.Client(), server.URL, server.URL)
	_, err := src.FetchArchive(context.Background(), 40.0, 38.0, "1900-01-01", "1900-01-02", "auto")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestFetchArchiveMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	src := NewOpenMeteoSource(server.Client(), server.URL, server.URL)
	_, err := src.FetchArchive(context.Background(), 40.0, 38.0, "2024-06-01", "2024-06-01", "auto")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestFetchArchiveRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(archiveFixture))
	}))
	defer server.Close()

	src := NewOpenMeteoSource(server.Client(), server.URL, server.URL)
	src.httpCfg.Backoff.InitialInterval = 0
	src.httpCfg.Backoff.MaxInterval = 0

	if _, err := src.FetchArchive(context.Background(), 40.0, 38.0, "2024-06-01", "2024-06-01", "auto"); err != nil {
		t.Fatalf("fetch should succeed on third attempt: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}
