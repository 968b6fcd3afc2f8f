// Package climate holds the area-aggregation and agronomic-indicator pipeline:
// aligning per-point time series, daily and monthly rollups, growing degree
// days, and threshold alert rules. All measure fields are pointers so a
// missing observation is never confused with zero.
package climate

import (
	"sort"
	"time"
)

// HourlyRecord is one hour of observations at a point.
type HourlyRecord struct {
	Time                time.Time `json:"time"`
	Temperature         *float64  `json:"temperature_2m,omitempty"`
	RelativeHumidity    *float64  `json:"relative_humidity_2m,omitempty"`
	DewPoint            *float64  `json:"dew_point_2m,omitempty"`
	ApparentTemperature *float64  `json:"apparent_temperature,omitempty"`
	Precipitation       *float64  `json:"precipitation,omitempty"`
	Rain                *float64  `json:"rain,omitempty"`
	Snowfall            *float64  `json:"snowfall,omitempty"`
	SurfacePressure     *float64  `json:"surface_pressure,omitempty"`
	WindSpeed           *float64  `json:"wind_speed_10m,omitempty"`
	WindGusts           *float64  `json:"wind_gusts_10m,omitempty"`
	WindDirection       *float64  `json:"wind_direction_10m,omitempty"`
}

// HourlySeries is time-ordered with strictly increasing, unique timestamps.
type HourlySeries []HourlyRecord

// DailyRecord is one calendar day's reconciled statistics. Source-reported
// extremes and hourly-derived statistics are kept side by side; neither
// overwrites the other.
type DailyRecord struct {
	Date time.Time `json:"date"`

	// Reported by the data source's daily block.
	TMinSource      *float64 `json:"t_min_source,omitempty"`
	TMaxSource      *float64 `json:"t_max_source,omitempty"`
	PrecipSumSource *float64 `json:"precip_sum_source,omitempty"`
	WindMaxSource   *float64 `json:"wind_max_source,omitempty"`
	WeatherCode     *int     `json:"weathercode,omitempty"`

	// Derived locally from the hourly series.
	TMean           *float64 `json:"t_mean,omitempty"`
	TMinHourly      *float64 `json:"t_min_hourly,omitempty"`
	TMaxHourly      *float64 `json:"t_max_hourly,omitempty"`
	RHMean          *float64 `json:"rh_mean,omitempty"`
	DewPointMean    *float64 `json:"dewpoint_mean,omitempty"`
	PrecipSumHourly *float64 `json:"precip_sum_hourly,omitempty"`
	WindMaxHourly   *float64 `json:"wind_max_hourly,omitempty"`

	// Derived from the weather code.
	WeatherDesc string `json:"weather_desc,omitempty"`
	Sunny       *bool  `json:"sunny,omitempty"`
}

// DailySeries is date-ordered with strictly increasing, unique dates.
type DailySeries []DailyRecord

// TMin returns the day's minimum temperature, preferring the source-reported
// extreme over the hourly-derived one.
func (r DailyRecord) TMin() *float64 {
	if r.TMinSource != nil {
		return r.TMinSource
	}
	return r.TMinHourly
}

// TMax returns the day's maximum temperature, preferring the source-reported
// extreme over the hourly-derived one.
func (r DailyRecord) TMax() *float64 {
	if r.TMaxSource != nil {
		return r.TMaxSource
	}
	return r.TMaxHourly
}

// Precip returns the day's precipitation sum, preferring the source-reported
// total over the hourly-derived one.
func (r DailyRecord) Precip() *float64 {
	if r.PrecipSumSource != nil {
		return r.PrecipSumSource
	}
	return r.PrecipSumHourly
}

func (s DailySeries) sortByDate() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

func (s HourlySeries) sortByTime() {
	sort.Slice(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
}

// ptr helpers used across the package.
func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }

// dateOf truncates a timestamp to its own calendar date at midnight UTC. The
// record's date component is used as-is, never shifted to another zone.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
