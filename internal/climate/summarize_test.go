package climate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hour(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestSummarizeDaily(t *testing.T) {
	hourly := HourlySeries{
		{Time: hour(2024, 6, 1, 0), Temperature: fptr(14.0), RelativeHumidity: fptr(80.0), Precipitation: fptr(0.2), WindSpeed: fptr(2.0)},
		{Time: hour(2024, 6, 1, 12), Temperature: fptr(26.0), RelativeHumidity: fptr(60.0), Precipitation: fptr(1.3), WindSpeed: fptr(7.5)},
		{Time: hour(2024, 6, 2, 12), Temperature: fptr(20.0), DewPoint: fptr(11.0)},
	}

	daily := SummarizeDaily(hourly)
	require.Len(t, daily, 2)

	first := daily[0]
	assert.Equal(t, day(2024, 6, 1), first.Date)
	assert.InDelta(t, 20.0, *first.TMean, 1e-9)
	assert.InDelta(t, 14.0, *first.TMinHourly, 1e-9)
	assert.InDelta(t, 26.0, *first.TMaxHourly, 1e-9)
	assert.InDelta(t, 70.0, *first.RHMean, 1e-9)
	assert.InDelta(t, 1.5, *first.PrecipSumHourly, 1e-9)
	assert.InDelta(t, 7.5, *first.WindMaxHourly, 1e-9)
	assert.Nil(t, first.DewPointMean)

	second := daily[1]
	assert.Equal(t, day(2024, 6, 2), second.Date)
	assert.InDelta(t, 11.0, *second.DewPointMean, 1e-9)
	assert.Nil(t, second.PrecipSumHourly)
	assert.Nil(t, second.WindMaxHourly)
}

func TestSummarizeDailyEmpty(t *testing.T) {
	assert.Nil(t, SummarizeDaily(nil))
}

func TestMergeDailyOuterJoin(t *testing.T) {
	source := DailySeries{
		{Date: day(2024, 6, 1), TMinSource: fptr(11.0), TMaxSource: fptr(27.0)},
		{Date: day(2024, 6, 2), TMinSource: fptr(12.0)},
	}
	derived := DailySeries{
		{Date: day(2024, 6, 2), TMinHourly: fptr(12.4), TMean: fptr(18.0)},
		{Date: day(2024, 6, 3), TMean: fptr(19.0)},
	}

	merged := MergeDaily(source, derived)
	require.Len(t, merged, 3)

	// Source-only date keeps source values.
	assert.InDelta(t, 11.0, *merged[0].TMinSource, 1e-9)
	assert.Nil(t, merged[0].TMean)

	// Overlapping date keeps both sides, neither overwritten.
	assert.InDelta(t, 12.0, *merged[1].TMinSource, 1e-9)
	assert.InDelta(t, 12.4, *merged[1].TMinHourly, 1e-9)
	assert.InDelta(t, 18.0, *merged[1].TMean, 1e-9)

	// Derived-only date appears with source fields missing.
	assert.Equal(t, day(2024, 6, 3), merged[2].Date)
	assert.Nil(t, merged[2].TMinSource)
	assert.InDelta(t, 19.0, *merged[2].TMean, 1e-9)
}

func TestApplySunny(t *testing.T) {
	series := DailySeries{
		{Date: day(2024, 6, 1), WeatherCode: iptr(0)},
		{Date: day(2024, 6, 2), WeatherCode: iptr(1)},
		{Date: day(2024, 6, 3), WeatherCode: iptr(61)},
		{Date: day(2024, 6, 4)},
	}

	out := ApplySunny(series, DefaultSunnyCodes)
	require.Len(t, out, 4)

	assert.True(t, *out[0].Sunny)
	assert.Equal(t, "Clear sky", out[0].WeatherDesc)
	assert.True(t, *out[1].Sunny)
	assert.False(t, *out[2].Sunny)
	assert.Equal(t, "Rain: Slight", out[2].WeatherDesc)
	assert.Nil(t, out[3].Sunny)

	// A sunny set restricted to clear sky only excludes "mainly clear".
	out = ApplySunny(series, []int{0})
	assert.True(t, *out[0].Sunny)
	assert.False(t, *out[1].Sunny)
}
