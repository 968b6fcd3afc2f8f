package climate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateDailySingleSeriesIdentity(t *testing.T) {
	in := DailySeries{
		{Date: day(2024, 6, 1), TMinSource: fptr(12.0), TMaxSource: fptr(24.0), WeatherCode: iptr(2)},
		{Date: day(2024, 6, 2), TMinSource: fptr(13.5), PrecipSumSource: fptr(4.2)},
	}

	out := AggregateDaily([]DailySeries{in})
	require.Len(t, out, 2)

	assert.Equal(t, in[0].Date, out[0].Date)
	assert.Equal(t, *in[0].TMinSource, *out[0].TMinSource)
	assert.Equal(t, *in[0].TMaxSource, *out[0].TMaxSource)
	assert.Equal(t, *in[0].WeatherCode, *out[0].WeatherCode)

	assert.Equal(t, *in[1].TMinSource, *out[1].TMinSource)
	assert.Equal(t, *in[1].PrecipSumSource, *out[1].PrecipSumSource)
	assert.Nil(t, out[1].TMaxSource)
}

func TestAggregateDailyMeansAcrossPoints(t *testing.T) {
	a := DailySeries{{Date: day(2024, 6, 1), TMaxSource: fptr(20.0)}}
	b := DailySeries{{Date: day(2024, 6, 1), TMaxSource: fptr(30.0)}}

	out := AggregateDaily([]DailySeries{a, b})
	require.Len(t, out, 1)
	assert.InDelta(t, 25.0, *out[0].TMaxSource, 1e-9)
}

// A timestamp present in only 1 of 3 inputs must yield that single value,
// never a mean diluted by implicit zeros.
func TestAggregateDailyMissingNotZeroFilled(t *testing.T) {
	a := DailySeries{{Date: day(2024, 6, 1), TMaxSource: fptr(21.0)}}
	b := DailySeries{{Date: day(2024, 6, 2), TMaxSource: fptr(30.0)}}
	c := DailySeries{{Date: day(2024, 6, 2), TMaxSource: fptr(32.0)}}

	out := AggregateDaily([]DailySeries{a, b, c})
	require.Len(t, out, 2)

	assert.Equal(t, day(2024, 6, 1), out[0].Date)
	assert.InDelta(t, 21.0, *out[0].TMaxSource, 1e-9)

	assert.Equal(t, day(2024, 6, 2), out[1].Date)
	assert.InDelta(t, 31.0, *out[1].TMaxSource, 1e-9)
}

func TestAggregateDailyWeatherCodeMode(t *testing.T) {
	mk := func(code int) DailySeries {
		return DailySeries{{Date: day(2024, 6, 1), WeatherCode: iptr(code)}}
	}

	out := AggregateDaily([]DailySeries{mk(61), mk(3), mk(61)})
	require.Len(t, out, 1)
	assert.Equal(t, 61, *out[0].WeatherCode)

	// Ties break toward the smallest code.
	out = AggregateDaily([]DailySeries{mk(61), mk(3)})
	require.Len(t, out, 1)
	assert.Equal(t, 3, *out[0].WeatherCode)

	// All missing stays missing.
	out = AggregateDaily([]DailySeries{
		{{Date: day(2024, 6, 1)}},
		{{Date: day(2024, 6, 1)}},
	})
	require.Len(t, out, 1)
	assert.Nil(t, out[0].WeatherCode)
}

func TestAggregateDailyUnionSorted(t *testing.T) {
	a := DailySeries{{Date: day(2024, 6, 3)}, {Date: day(2024, 6, 5)}}
	b := DailySeries{{Date: day(2024, 6, 1)}, {Date: day(2024, 6, 4)}}

	out := AggregateDaily([]DailySeries{a, b})
	require.Len(t, out, 4)
	for i := 1; i < len(out); i++ {
		assert.True(t, out[i-1].Date.Before(out[i].Date), "dates must be strictly increasing")
	}
}

func TestAggregateHourly(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a := HourlySeries{{Time: ts, Temperature: fptr(18.0), WindSpeed: fptr(3.0)}}
	b := HourlySeries{{Time: ts, Temperature: fptr(22.0)}}

	out := AggregateHourly([]HourlySeries{a, b})
	require.Len(t, out, 1)
	assert.InDelta(t, 20.0, *out[0].Temperature, 1e-9)
	// WindSpeed present in one input only: taken as-is.
	assert.InDelta(t, 3.0, *out[0].WindSpeed, 1e-9)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Nil(t, AggregateDaily(nil))
	assert.Nil(t, AggregateHourly(nil))
}
