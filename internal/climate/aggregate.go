package climate

import (
	"sort"
	"time"
)

// dailyNumericFields enumerates the averageable fields of a DailyRecord as
// addressable accessors, so aggregation touches every column without
// reflection.
var dailyNumericFields = []func(*DailyRecord) **float64{
	func(r *DailyRecord) **float64 { return &r.TMinSource },
	func(r *DailyRecord) **float64 { return &r.TMaxSource },
	func(r *DailyRecord) **float64 { return &r.PrecipSumSource },
	func(r *DailyRecord) **float64 { return &r.WindMaxSource },
	func(r *DailyRecord) **float64 { return &r.TMean },
	func(r *DailyRecord) **float64 { return &r.TMinHourly },
	func(r *DailyRecord) **float64 { return &r.TMaxHourly },
	func(r *DailyRecord) **float64 { return &r.RHMean },
	func(r *DailyRecord) **float64 { return &r.DewPointMean },
	func(r *DailyRecord) **float64 { return &r.PrecipSumHourly },
	func(r *DailyRecord) **float64 { return &r.WindMaxHourly },
}

var hourlyNumericFields = []func(*HourlyRecord) **float64{
	func(r *HourlyRecord) **float64 { return &r.Temperature },
	func(r *HourlyRecord) **float64 { return &r.RelativeHumidity },
	func(r *HourlyRecord) **float64 { return &r.DewPoint },
	func(r *HourlyRecord) **float64 { return &r.ApparentTemperature },
	func(r *HourlyRecord) **float64 { return &r.Precipitation },
	func(r *HourlyRecord) **float64 { return &r.Rain },
	func(r *HourlyRecord) **float64 { return &r.Snowfall },
	func(r *HourlyRecord) **float64 { return &r.SurfacePressure },
	func(r *HourlyRecord) **float64 { return &r.WindSpeed },
	func(r *HourlyRecord) **float64 { return &r.WindGusts },
	func(r *HourlyRecord) **float64 { return &r.WindDirection },
}

// AggregateDaily collapses per-point daily series into one area series.
// Input series are reindexed onto the sorted union of their dates; at each
// date every numeric field becomes the mean of the non-missing input values
// (a value present in only one input is taken as-is, never diluted by
// implicit zeros) and the weather code becomes the mode across inputs, ties
// broken by the smallest code, missing when no input has one.
func AggregateDaily(series []DailySeries) DailySeries {
	if len(series) == 0 {
		return nil
	}

	union := make(map[time.Time][]*DailyRecord)
	for i := range series {
		for j := range series[i] {
			rec := &series[i][j]
			union[rec.Date] = append(union[rec.Date], rec)
		}
	}

	dates := make([]time.Time, 0, len(union))
	for d := range union {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make(DailySeries, 0, len(dates))
	for _, d := range dates {
		recs := union[d]
		agg := DailyRecord{Date: d}

		for _, field := range dailyNumericFields {
			var sum float64
			var n int
			for _, rec := range recs {
				if v := *field(rec); v != nil {
					sum += *v
					n++
				}
			}
			if n > 0 {
				*field(&agg) = fptr(sum / float64(n))
			}
		}

		agg.WeatherCode = modeCode(recs)
		out = append(out, agg)
	}
	return out
}

// AggregateHourly is the hourly counterpart of AggregateDaily. Hourly records
// carry no categorical column, so only means are taken.
func AggregateHourly(series []HourlySeries) HourlySeries {
	if len(series) == 0 {
		return nil
	}

	union := make(map[time.Time][]*HourlyRecord)
	for i := range series {
		for j := range series[i] {
			rec := &series[i][j]
			union[rec.Time] = append(union[rec.Time], rec)
		}
	}

	times := make([]time.Time, 0, len(union))
	for t := range union {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	out := make(HourlySeries, 0, len(times))
	for _, t := range times {
		recs := union[t]
		agg := HourlyRecord{Time: t}

		for _, field := range hourlyNumericFields {
			var sum float64
			var n int
			for _, rec := range recs {
				if v := *field(rec); v != nil {
					sum += *v
					n++
				}
			}
			if n > 0 {
				*field(&agg) = fptr(sum / float64(n))
			}
		}
		out = append(out, agg)
	}
	return out
}

// modeCode picks the most frequent weather code among the records, smallest
// code on ties, nil when every record is missing one.
func modeCode(recs []*DailyRecord) *int {
	counts := make(map[int]int)
	for _, rec := range recs {
		if rec.WeatherCode != nil {
			counts[*rec.WeatherCode]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	best := 0
	bestCount := -1
	for code, count := range counts {
		if count > bestCount || (count == bestCount && code < best) {
			best = code
			bestCount = count
		}
	}
	return iptr(best)
}
