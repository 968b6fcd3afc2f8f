package advisory

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/frnietz/agroclimate/internal/climate"
)

// MonthlyCSV serializes monthly records to delimited text: a header row and
// one row per month. Missing values render as empty cells.
func MonthlyCSV(monthly []climate.MonthlyRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"month", "tmin_mean", "tmax_mean", "rh_mean", "dewpoint_mean",
		"precip_total", "rainy_days", "dry_days", "sunny_days",
		"heat_days_32c", "heat_days_35c", "frost_days_0c", "frost_days_minus2c",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, m := range monthly {
		row := []string{
			m.Month,
			floatCell(m.TMinMean), floatCell(m.TMaxMean),
			floatCell(m.RHMean), floatCell(m.DewPointMean),
			floatCell(m.PrecipTotal),
			intCell(m.RainyDays), intCell(m.DryDays), intCell(m.SunnyDays),
			intCell(m.HeatDays32), intCell(m.HeatDays35),
			intCell(m.FrostDays0), intCell(m.FrostDays2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GuideCSV serializes the advisory guide table.
func GuideCSV(guide []GuideEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Month", "Phenology", "Climate Focus", "Orchard Ops", "Pest/Disease Focus"}); err != nil {
		return nil, err
	}
	for _, g := range guide {
		if err := w.Write([]string{g.Month, g.Phenology, g.ClimateFocus, g.OrchardOps, g.PestFocus}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
