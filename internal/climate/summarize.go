package climate

import (
	"sort"
	"time"

	"github.com/frnietz/agroclimate/internal/meteo"
)

// SummarizeDaily derives daily statistics from an hourly series: mean/min/max
// temperature, mean relative humidity, mean dew point, summed precipitation
// and maximum wind speed. Hours are grouped by their own calendar date.
func SummarizeDaily(hourly HourlySeries) DailySeries {
	if len(hourly) == 0 {
		return nil
	}

	type acc struct {
		tempSum, tempMin, tempMax float64
		tempN                     int
		rhSum                     float64
		rhN                       int
		dewSum                    float64
		dewN                      int
		precipSum                 float64
		precipN                   int
		windMax                   float64
		windN                     int
	}

	days := make(map[time.Time]*acc)
	for _, h := range hourly {
		d := dateOf(h.Time)
		a, ok := days[d]
		if !ok {
			a = &acc{}
			days[d] = a
		}

		if h.Temperature != nil {
			v := *h.Temperature
			if a.tempN == 0 || v < a.tempMin {
				a.tempMin = v
			}
			if a.tempN == 0 || v > a.tempMax {
				a.tempMax = v
			}
			a.tempSum += v
			a.tempN++
		}
		if h.RelativeHumidity != nil {
			a.rhSum += *h.RelativeHumidity
			a.rhN++
		}
		if h.DewPoint != nil {
			a.dewSum += *h.DewPoint
			a.dewN++
		}
		if h.Precipitation != nil {
			a.precipSum += *h.Precipitation
			a.precipN++
		}
		if h.WindSpeed != nil {
			if a.windN == 0 || *h.WindSpeed > a.windMax {
				a.windMax = *h.WindSpeed
			}
			a.windN++
		}
	}

	dates := make([]time.Time, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make(DailySeries, 0, len(dates))
	for _, d := range dates {
		a := days[d]
		rec := DailyRecord{Date: d}
		if a.tempN > 0 {
			rec.TMean = fptr(a.tempSum / float64(a.tempN))
			rec.TMinHourly = fptr(a.tempMin)
			rec.TMaxHourly = fptr(a.tempMax)
		}
		if a.rhN > 0 {
			rec.RHMean = fptr(a.rhSum / float64(a.rhN))
		}
		if a.dewN > 0 {
			rec.DewPointMean = fptr(a.dewSum / float64(a.dewN))
		}
		if a.precipN > 0 {
			rec.PrecipSumHourly = fptr(a.precipSum)
		}
		if a.windN > 0 {
			rec.WindMaxHourly = fptr(a.windMax)
		}
		out = append(out, rec)
	}
	return out
}

// MergeDaily outer-joins the source-reported daily series with the
// hourly-derived one: the union of dates, columns from both sides preserved.
// The two sides live in distinct fields, so neither silently overwrites the
// other.
func MergeDaily(source, derived DailySeries) DailySeries {
	merged := make(map[time.Time]DailyRecord)
	for _, rec := range source {
		merged[rec.Date] = rec
	}
	for _, rec := range derived {
		m, ok := merged[rec.Date]
		if !ok {
			m = DailyRecord{Date: rec.Date}
		}
		m.TMean = rec.TMean
		m.TMinHourly = rec.TMinHourly
		m.TMaxHourly = rec.TMaxHourly
		m.RHMean = rec.RHMean
		m.DewPointMean = rec.DewPointMean
		m.PrecipSumHourly = rec.PrecipSumHourly
		m.WindMaxHourly = rec.WindMaxHourly
		merged[rec.Date] = m
	}

	out := make(DailySeries, 0, len(merged))
	for _, rec := range merged {
		out = append(out, rec)
	}
	out.sortByDate()
	return out
}

// DefaultSunnyCodes is the default "clear" WMO code set: clear sky and
// mainly clear.
var DefaultSunnyCodes = []int{0, 1}

// ApplySunny flags each day whose weather code is in the sunny code set and
// attaches the code's WMO description. Days without a code keep a nil flag.
func ApplySunny(series DailySeries, sunnyCodes []int) DailySeries {
	set := make(map[int]bool, len(sunnyCodes))
	for _, c := range sunnyCodes {
		set[c] = true
	}

	for i := range series {
		if series[i].WeatherCode == nil {
			series[i].Sunny = nil
			continue
		}
		code := *series[i].WeatherCode
		series[i].Sunny = bptr(set[code])
		series[i].WeatherDesc = meteo.DescribeCode(code)
	}
	return series
}
