package climate

import "time"

// GDDValue is one day's growing-degree-day contribution.
type GDDValue struct {
	Date time.Time `json:"date"`
	GDD  float64   `json:"gdd"`
}

// ComputeGDD computes daily growing degree days from min/max temperature.
// The maximum is clipped to the optional upper cap before averaging — the cap
// applies to tmax, not to the final GDD. Days missing either temperature
// contribute no value at all. Source-reported extremes are preferred over the
// hourly-derived fallback.
func ComputeGDD(daily DailySeries, baseC float64, capC *float64) []GDDValue {
	var out []GDDValue
	for _, rec := range daily {
		tmin := rec.TMin()
		tmax := rec.TMax()
		if tmin == nil || tmax == nil {
			continue
		}

		high := *tmax
		if capC != nil && high > *capC {
			high = *capC
		}

		gdd := (*tmin+high)/2.0 - baseC
		if gdd < 0 {
			gdd = 0
		}
		out = append(out, GDDValue{Date: rec.Date, GDD: gdd})
	}
	return out
}

// SeasonTotal sums all defined daily GDD values.
func SeasonTotal(values []GDDValue) float64 {
	var total float64
	for _, v := range values {
		total += v.GDD
	}
	return total
}
