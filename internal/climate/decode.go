package climate

import (
	"time"

	"github.com/frnietz/agroclimate/internal/meteo"
)

// Open-Meteo timestamp layouts: hourly carries date+hour, daily a bare date.
const (
	hourlyLayout = "2006-01-02T15:04"
	dailyLayout  = "2006-01-02"
)

// HourlyFromPayload decodes the payload's hourly block into a series.
// Entries with unparseable timestamps are skipped.
func HourlyFromPayload(p *meteo.Payload) HourlySeries {
	if p == nil || p.Hourly == nil {
		return nil
	}
	h := p.Hourly

	series := make(HourlySeries, 0, len(h.Time))
	for i, raw := range h.Time {
		ts, err := time.Parse(hourlyLayout, raw)
		if err != nil {
			if ts, err = time.Parse(time.RFC3339, raw); err != nil {
				continue
			}
		}
		series = append(series, HourlyRecord{
			Time:                ts,
			Temperature:         at(h.Temperature2m, i),
			RelativeHumidity:    at(h.RelativeHumidity2m, i),
			DewPoint:            at(h.DewPoint2m, i),
			ApparentTemperature: at(h.ApparentTemperature, i),
			Precipitation:       at(h.Precipitation, i),
			Rain:                at(h.Rain, i),
			Snowfall:            at(h.Snowfall, i),
			SurfacePressure:     at(h.SurfacePressure, i),
			WindSpeed:           at(h.WindSpeed10m, i),
			WindGusts:           at(h.WindGusts10m, i),
			WindDirection:       at(h.WindDirection10m, i),
		})
	}
	series.sortByTime()
	return series
}

// DailyFromPayload decodes the payload's daily block into a series holding
// the source-reported extremes.
func DailyFromPayload(p *meteo.Payload) DailySeries {
	if p == nil || p.Daily == nil {
		return nil
	}
	d := p.Daily

	series := make(DailySeries, 0, len(d.Time))
	for i, raw := range d.Time {
		ts, err := time.Parse(dailyLayout, raw)
		if err != nil {
			continue
		}
		series = append(series, DailyRecord{
			Date:            dateOf(ts),
			TMinSource:      at(d.Temperature2mMin, i),
			TMaxSource:      at(d.Temperature2mMax, i),
			PrecipSumSource: at(d.PrecipitationSum, i),
			WindMaxSource:   at(d.WindSpeed10mMax, i),
			WeatherCode:     intAt(d.WeatherCode, i),
		})
	}
	series.sortByDate()
	return series
}

// at returns the i-th value of a parallel array, nil when the array is short
// or the value is a JSON null.
func at(vals []*float64, i int) *float64 {
	if i >= len(vals) || vals[i] == nil {
		return nil
	}
	v := *vals[i]
	return &v
}

func intAt(vals []*int, i int) *int {
	if i >= len(vals) || vals[i] == nil {
		return nil
	}
	v := *vals[i]
	return &v
}
