package climate

import "time"

// Default alert thresholds.
const (
	DefaultWeeklyRainThresholdMM = 25.0
	DefaultHeatThresholdC        = 35.0
	DefaultHeatMinDays           = 3
	DefaultForecastPeekDays      = 5
)

// WeeklyRainRule triggers on weekly precipitation buckets whose sum falls
// strictly below the threshold, optionally restricted to a subset of
// calendar months. A non-positive ThresholdMM is a sentinel for the default;
// a literal zero threshold cannot be expressed (it would never trigger, as
// precipitation sums are non-negative).
type WeeklyRainRule struct {
	Months      []time.Month `json:"months,omitempty"`
	ThresholdMM float64      `json:"threshold_mm"`
}

// WeeklyRainResult is the filtered bucket list plus the triggered subset.
type WeeklyRainResult struct {
	Buckets   []WeeklyBucket `json:"buckets"`
	Triggered []WeeklyBucket `json:"triggered"`
}

// EvaluateWeeklyRain applies the rule to the weekly buckets. Buckets without
// a defined sum never trigger. Alert state is not persisted; every call
// evaluates from scratch.
func EvaluateWeeklyRain(buckets []WeeklyBucket, rule WeeklyRainRule) WeeklyRainResult {
	threshold := rule.ThresholdMM
	if threshold <= 0 {
		threshold = DefaultWeeklyRainThresholdMM
	}

	allowed := make(map[time.Month]bool, len(rule.Months))
	for _, m := range rule.Months {
		allowed[m] = true
	}

	result := WeeklyRainResult{
		Buckets:   []WeeklyBucket{},
		Triggered: []WeeklyBucket{},
	}
	for _, b := range buckets {
		if len(allowed) > 0 && !allowed[b.Start.Month()] {
			continue
		}
		result.Buckets = append(result.Buckets, b)
		if b.PrecipSum != nil && *b.PrecipSum < threshold {
			result.Triggered = append(result.Triggered, b)
		}
	}
	return result
}

// HeatRule triggers when the count of heat days in a calendar month reaches
// a minimum. Non-positive ThresholdC and MinDays are sentinels for the
// defaults, so a zero threshold or a zero-day minimum cannot be requested.
type HeatRule struct {
	Month      time.Month `json:"month"`
	ThresholdC float64    `json:"threshold_c"`
	MinDays    int        `json:"min_days"`
}

// HeatResult reports the heat-day count and whether the rule fired.
type HeatResult struct {
	Count     int  `json:"count"`
	Triggered bool `json:"triggered"`
}

// EvaluateHeat counts days in the rule's month with max temperature at or
// above the threshold and fires when the count reaches MinDays.
func EvaluateHeat(daily DailySeries, rule HeatRule) HeatResult {
	threshold := rule.ThresholdC
	if threshold <= 0 {
		threshold = DefaultHeatThresholdC
	}
	minDays := rule.MinDays
	if minDays <= 0 {
		minDays = DefaultHeatMinDays
	}

	count := HeatDaysInMonth(daily, rule.Month, threshold)
	return HeatResult{Count: count, Triggered: count >= minDays}
}

// ForecastPeek is the informational-only early warning computed from a short
// forward forecast. It never alters the historical trigger state.
type ForecastPeek struct {
	Days            int      `json:"days"`
	PrecipSum       *float64 `json:"precip_sum,omitempty"`
	LowRainExpected bool     `json:"low_rain_expected"`
	HeatDays        int      `json:"heat_days"`
	HeatExpected    bool     `json:"heat_expected"`
}

// EvaluateForecastPeek re-runs both comparisons against a short forecast:
// the summed forecast precipitation against the weekly threshold, and the
// forecast heat-day count against the heat threshold.
func EvaluateForecastPeek(forecast DailySeries, rain WeeklyRainRule, heat HeatRule) ForecastPeek {
	rainThreshold := rain.ThresholdMM
	if rainThreshold <= 0 {
		rainThreshold = DefaultWeeklyRainThresholdMM
	}
	heatThreshold := heat.ThresholdC
	if heatThreshold <= 0 {
		heatThreshold = DefaultHeatThresholdC
	}

	peek := ForecastPeek{Days: len(forecast)}

	var sum float64
	var n int
	for _, rec := range forecast {
		if p := rec.Precip(); p != nil {
			sum += *p
			n++
		}
		if tmax := rec.TMax(); tmax != nil && *tmax >= heatThreshold {
			peek.HeatDays++
		}
	}
	if n > 0 {
		peek.PrecipSum = fptr(sum)
		peek.LowRainExpected = sum < rainThreshold
	}
	peek.HeatExpected = peek.HeatDays > 0
	return peek
}
