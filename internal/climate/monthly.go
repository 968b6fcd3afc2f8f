package climate

import (
	"sort"
	"time"
)

// Fixed heuristic thresholds for the monthly rollup and drought flagging.
// They are conventions for hazelnut-growing advisories, not physically
// derived values.
const (
	rainyDayMM = 1.0 // precipitation above this counts as a rainy day
	dryDayMM   = 1.0 // precipitation below this counts as a dry day

	heatDayModerateC = 32.0
	heatDaySevereC   = 35.0
	frostDayC        = 0.0
	frostDayHardC    = -2.0

	droughtMonthPrecipMM = 30.0
	droughtMonthDryDays  = 20
)

// MonthlyRecord is one calendar month's rollup of daily records. A field is
// nil when its source data is entirely absent for that month.
type MonthlyRecord struct {
	Month string `json:"month"` // YYYY-MM

	TMinMean     *float64 `json:"tmin_mean,omitempty"`
	TMaxMean     *float64 `json:"tmax_mean,omitempty"`
	RHMean       *float64 `json:"rh_mean,omitempty"`
	DewPointMean *float64 `json:"dewpoint_mean,omitempty"`
	PrecipTotal  *float64 `json:"precip_total,omitempty"`

	RainyDays  *int `json:"rainy_days,omitempty"`
	DryDays    *int `json:"dry_days,omitempty"`
	SunnyDays  *int `json:"sunny_days,omitempty"`
	HeatDays32 *int `json:"heat_days_32c,omitempty"`
	HeatDays35 *int `json:"heat_days_35c,omitempty"`
	FrostDays0 *int `json:"frost_days_0c,omitempty"`
	FrostDays2 *int `json:"frost_days_minus2c,omitempty"`
}

// MonthlyRollup groups daily records by calendar month and computes the
// climate summary for each. Rainy (> 1 mm) and dry (< 1 mm) day counts are
// deliberately non-exclusive with missing-data days: a day with precipitation
// of exactly 1 mm, or with no precipitation data, counts as neither.
func MonthlyRollup(daily DailySeries) []MonthlyRecord {
	type acc struct {
		tminSum float64
		tminN   int
		tmaxSum float64
		tmaxN   int
		rhSum   float64
		rhN     int
		dewSum  float64
		dewN    int

		precipSum float64
		precipN   int
		rainy     int
		dry       int

		sunny  int
		sunnyN int

		heat32, heat35  int
		frost0, frostM2 int
	}

	months := make(map[string]*acc)
	for _, rec := range daily {
		label := rec.Date.Format("2006-01")
		a, ok := months[label]
		if !ok {
			a = &acc{}
			months[label] = a
		}

		if tmin := rec.TMin(); tmin != nil {
			a.tminSum += *tmin
			a.tminN++
			if *tmin <= frostDayC {
				a.frost0++
			}
			if *tmin <= frostDayHardC {
				a.frostM2++
			}
		}
		if tmax := rec.TMax(); tmax != nil {
			a.tmaxSum += *tmax
			a.tmaxN++
			if *tmax >= heatDayModerateC {
				a.heat32++
			}
			if *tmax >= heatDaySevereC {
				a.heat35++
			}
		}
		if rec.RHMean != nil {
			a.rhSum += *rec.RHMean
			a.rhN++
		}
		if rec.DewPointMean != nil {
			a.dewSum += *rec.DewPointMean
			a.dewN++
		}
		if p := rec.Precip(); p != nil {
			a.precipSum += *p
			a.precipN++
			if *p > rainyDayMM {
				a.rainy++
			}
			if *p < dryDayMM {
				a.dry++
			}
		}
		if rec.Sunny != nil {
			a.sunnyN++
			if *rec.Sunny {
				a.sunny++
			}
		}
	}

	labels := make([]string, 0, len(months))
	for label := range months {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]MonthlyRecord, 0, len(labels))
	for _, label := range labels {
		a := months[label]
		rec := MonthlyRecord{Month: label}
		if a.tminN > 0 {
			rec.TMinMean = fptr(a.tminSum / float64(a.tminN))
			rec.FrostDays0 = iptr(a.frost0)
			rec.FrostDays2 = iptr(a.frostM2)
		}
		if a.tmaxN > 0 {
			rec.TMaxMean = fptr(a.tmaxSum / float64(a.tmaxN))
			rec.HeatDays32 = iptr(a.heat32)
			rec.HeatDays35 = iptr(a.heat35)
		}
		if a.rhN > 0 {
			rec.RHMean = fptr(a.rhSum / float64(a.rhN))
		}
		if a.dewN > 0 {
			rec.DewPointMean = fptr(a.dewSum / float64(a.dewN))
		}
		if a.precipN > 0 {
			rec.PrecipTotal = fptr(a.precipSum)
			rec.RainyDays = iptr(a.rainy)
			rec.DryDays = iptr(a.dry)
		}
		if a.sunnyN > 0 {
			rec.SunnyDays = iptr(a.sunny)
		}
		out = append(out, rec)
	}
	return out
}

// WeeklyBucket is one fixed 7-day precipitation bucket.
type WeeklyBucket struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Month     string    `json:"month"` // YYYY-MM of the bucket start
	PrecipSum *float64  `json:"precip_sum,omitempty"`
}

// WeeklyPrecip resamples the daily precipitation into fixed 7-day buckets
// anchored to the given weekday (Monday-starting weeks by default in
// callers). Buckets with no defined precipitation keep a nil sum.
func WeeklyPrecip(daily DailySeries, anchor time.Weekday) []WeeklyBucket {
	if len(daily) == 0 {
		return nil
	}

	first := daily[0].Date
	last := daily[len(daily)-1].Date

	// Roll back to the anchor weekday on or before the first date.
	start := first
	for start.Weekday() != anchor {
		start = start.AddDate(0, 0, -1)
	}

	var buckets []WeeklyBucket
	for cur := start; !cur.After(last); cur = cur.AddDate(0, 0, 7) {
		end := cur.AddDate(0, 0, 6)

		var sum float64
		var n int
		for _, rec := range daily {
			if rec.Date.Before(cur) || rec.Date.After(end) {
				continue
			}
			if p := rec.Precip(); p != nil {
				sum += *p
				n++
			}
		}

		b := WeeklyBucket{Start: cur, End: end, Month: cur.Format("2006-01")}
		if n > 0 {
			b.PrecipSum = fptr(sum)
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// DroughtLikeMonths flags months whose precipitation total is below 30 mm
// while counting more than 20 dry days. Returns the flagged month labels in
// order.
func DroughtLikeMonths(monthly []MonthlyRecord) []string {
	var flagged []string
	for _, m := range monthly {
		if m.PrecipTotal == nil || m.DryDays == nil {
			continue
		}
		if *m.PrecipTotal < droughtMonthPrecipMM && *m.DryDays > droughtMonthDryDays {
			flagged = append(flagged, m.Month)
		}
	}
	return flagged
}

// HeatDaysInMonth counts days within the given calendar month (any year in
// range) whose maximum temperature meets or exceeds the threshold.
func HeatDaysInMonth(daily DailySeries, month time.Month, thresholdC float64) int {
	count := 0
	for _, rec := range daily {
		if rec.Date.Month() != month {
			continue
		}
		if tmax := rec.TMax(); tmax != nil && *tmax >= thresholdC {
			count++
		}
	}
	return count
}
