package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	kelvins "github.com/kelvins/geocoder"
)

// Place is one geocoding result.
type Place struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves place names to coordinates via the Open-Meteo geocoding
// API. When the search returns nothing and a Google API key is configured,
// the Google geocoder is tried as a fallback.
type Geocoder struct {
	baseURL   string
	client    *http.Client
	googleKey string
}

// NewGeocoder creates a geocoder. An empty baseURL falls back to the public
// Open-Meteo endpoint; an empty googleKey disables the fallback.
func NewGeocoder(client *http.Client, baseURL, googleKey string) *Geocoder {
	if baseURL == "" {
		baseURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	return &Geocoder{baseURL: baseURL, client: client, googleKey: googleKey}
}

// Geocode searches for up to count places matching name.
func (g *Geocoder) Geocode(ctx context.Context, name string, count int) ([]Place, error) {
	if count <= 0 {
		count = 5
	}

	values := url.Values{}
	values.Set("name", name)
	values.Set("count", strconv.Itoa(count))
	values.Set("language", "en")
	values.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", g.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: geocoding %q: %v", ErrSourceUnavailable, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: geocoding %q: status %d", ErrSourceUnavailable, name, resp.StatusCode)
	}

	var body struct {
		Results []Place `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: geocoding %q: %v", ErrSourceUnavailable, name, err)
	}

	if len(body.Results) == 0 && g.googleKey != "" {
		return g.geocodeGoogle(name)
	}
	return body.Results, nil
}

// geocodeGoogle resolves a name through the Google geocoding API. It yields
// at most one result.
func (g *Geocoder) geocodeGoogle(name string) ([]Place, error) {
	kelvins.ApiKey = g.googleKey

	loc, err := kelvins.Geocoding(kelvins.Address{City: name})
	if err != nil {
		return nil, fmt.Errorf("%w: google geocoding %q: %v", ErrSourceUnavailable, name, err)
	}

	return []Place{{
		Name:      name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}}, nil
}
