package meteo

import "errors"

var (
	// ErrSourceUnavailable is returned when a remote weather fetch cannot be
	// completed: network failure, timeout, non-2xx status or malformed body.
	ErrSourceUnavailable = errors.New("weather source unavailable")

	// ErrNoData is returned when a well-formed response carries neither hourly
	// nor daily samples (e.g. a date range before data availability).
	ErrNoData = errors.New("no weather data for requested range")
)

// Payload is the raw Open-Meteo response shape: parallel arrays of timestamps
// and per-variable values. Value slices use pointers so JSON nulls stay
// distinguishable from zero.
type Payload struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"`
	Hourly    *HourlyBlock `json:"hourly,omitempty"`
	Daily     *DailyBlock  `json:"daily,omitempty"`
}

// HourlyBlock holds hourly variables aligned with Time.
type HourlyBlock struct {
	Time                []string   `json:"time"`
	Temperature2m       []*float64 `json:"temperature_2m"`
	RelativeHumidity2m  []*float64 `json:"relative_humidity_2m"`
	DewPoint2m          []*float64 `json:"dew_point_2m"`
	ApparentTemperature []*float64 `json:"apparent_temperature"`
	Precipitation       []*float64 `json:"precipitation"`
	Rain                []*float64 `json:"rain"`
	Snowfall            []*float64 `json:"snowfall"`
	SurfacePressure     []*float64 `json:"surface_pressure"`
	WindSpeed10m        []*float64 `json:"wind_speed_10m"`
	WindGusts10m        []*float64 `json:"wind_gusts_10m"`
	WindDirection10m    []*float64 `json:"wind_direction_10m"`
}

// DailyBlock holds per-day variables aligned with Time.
type DailyBlock struct {
	Time             []string   `json:"time"`
	Temperature2mMax []*float64 `json:"temperature_2m_max"`
	Temperature2mMin []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	WindSpeed10mMax  []*float64 `json:"wind_speed_10m_max"`
	WeatherCode      []*int     `json:"weathercode"`
}

// Empty reports whether the payload carries no hourly and no daily samples.
func (p *Payload) Empty() bool {
	if p == nil {
		return true
	}
	hasHourly := p.Hourly != nil && len(p.Hourly.Time) > 0
	hasDaily := p.Daily != nil && len(p.Daily.Time) > 0
	return !hasHourly && !hasDaily
}
