package climate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyRollupDayCounts(t *testing.T) {
	daily := DailySeries{
		{Date: day(2024, 6, 1), PrecipSumHourly: fptr(0.5)},
		{Date: day(2024, 6, 2), PrecipSumHourly: fptr(2.0)},
		{Date: day(2024, 6, 3), PrecipSumHourly: fptr(0.0)},
		{Date: day(2024, 6, 4)}, // precipitation missing
	}

	monthly := MonthlyRollup(daily)
	require.Len(t, monthly, 1)
	m := monthly[0]
	assert.Equal(t, "2024-06", m.Month)
	require.NotNil(t, m.PrecipTotal)
	assert.InDelta(t, 2.5, *m.PrecipTotal, 1e-9)
	require.NotNil(t, m.RainyDays)
	assert.Equal(t, 1, *m.RainyDays) // only 2.0 mm exceeds 1 mm
	require.NotNil(t, m.DryDays)
	assert.Equal(t, 2, *m.DryDays) // 0.5 and 0.0; the missing day counts as neither
}

func TestMonthlyRollupHeatAndFrost(t *testing.T) {
	daily := DailySeries{
		{Date: day(2024, 7, 1), TMinSource: fptr(18.0), TMaxSource: fptr(33.0)},
		{Date: day(2024, 7, 2), TMinSource: fptr(20.0), TMaxSource: fptr(36.0)},
		{Date: day(2024, 7, 3), TMinSource: fptr(-1.0), TMaxSource: fptr(10.0)},
		{Date: day(2024, 7, 4), TMinSource: fptr(-3.0), TMaxSource: fptr(5.0)},
	}

	monthly := MonthlyRollup(daily)
	require.Len(t, monthly, 1)
	m := monthly[0]
	assert.Equal(t, 2, *m.HeatDays32) // 33 and 36
	assert.Equal(t, 1, *m.HeatDays35) // 36 only
	assert.Equal(t, 2, *m.FrostDays0) // -1 and -3
	assert.Equal(t, 1, *m.FrostDays2) // -3 only
	assert.InDelta(t, 8.5, *m.TMinMean, 1e-9)
	assert.InDelta(t, 21.0, *m.TMaxMean, 1e-9)
}

func TestMonthlyRollupAbsentFieldsStayNil(t *testing.T) {
	daily := DailySeries{
		{Date: day(2024, 5, 1), TMaxSource: fptr(25.0)},
		{Date: day(2024, 5, 2), TMaxSource: fptr(27.0)},
	}

	monthly := MonthlyRollup(daily)
	require.Len(t, monthly, 1)
	m := monthly[0]
	assert.Nil(t, m.TMinMean)
	assert.Nil(t, m.FrostDays0)
	assert.Nil(t, m.PrecipTotal)
	assert.Nil(t, m.RainyDays)
	assert.Nil(t, m.SunnyDays)
	require.NotNil(t, m.TMaxMean)
	assert.InDelta(t, 26.0, *m.TMaxMean, 1e-9)
}

func TestMonthlyRollupSortedAcrossMonths(t *testing.T) {
	daily := DailySeries{
		{Date: day(2024, 7, 15), TMaxSource: fptr(30.0)},
		{Date: day(2024, 6, 15), TMaxSource: fptr(25.0)},
		{Date: day(2024, 8, 15), TMaxSource: fptr(28.0)},
	}

	monthly := MonthlyRollup(daily)
	require.Len(t, monthly, 3)
	assert.Equal(t, "2024-06", monthly[0].Month)
	assert.Equal(t, "2024-07", monthly[1].Month)
	assert.Equal(t, "2024-08", monthly[2].Month)
}

func TestWeeklyPrecipBuckets(t *testing.T) {
	// 2024-06-05 is a Wednesday; the Monday anchor rolls back to 2024-06-03.
	var daily DailySeries
	for i := 0; i < 10; i++ {
		daily = append(daily, DailyRecord{
			Date:            day(2024, 6, 5+i),
			PrecipSumHourly: fptr(1.0),
		})
	}

	buckets := WeeklyPrecip(daily, time.Monday)
	require.Len(t, buckets, 2)

	assert.Equal(t, day(2024, 6, 3), buckets[0].Start)
	assert.Equal(t, day(2024, 6, 9), buckets[0].End)
	assert.Equal(t, "2024-06", buckets[0].Month)
	require.NotNil(t, buckets[0].PrecipSum)
	assert.InDelta(t, 5.0, *buckets[0].PrecipSum, 1e-9) // Jun 5..9

	assert.Equal(t, day(2024, 6, 10), buckets[1].Start)
	require.NotNil(t, buckets[1].PrecipSum)
	assert.InDelta(t, 5.0, *buckets[1].PrecipSum, 1e-9) // Jun 10..14
}

func TestWeeklyPrecipMissingDataStaysNil(t *testing.T) {
	daily := DailySeries{
		{Date: day(2024, 6, 3)},
		{Date: day(2024, 6, 4)},
	}
	buckets := WeeklyPrecip(daily, time.Monday)
	require.Len(t, buckets, 1)
	assert.Nil(t, buckets[0].PrecipSum)

	assert.Nil(t, WeeklyPrecip(nil, time.Monday))
}

func TestDroughtLikeMonths(t *testing.T) {
	monthly := []MonthlyRecord{
		{Month: "2024-06", PrecipTotal: fptr(20.0), DryDays: iptr(25)}, // both criteria
		{Month: "2024-07", PrecipTotal: fptr(50.0), DryDays: iptr(25)}, // too wet
		{Month: "2024-08", PrecipTotal: fptr(20.0), DryDays: iptr(15)}, // not enough dry days
		{Month: "2024-09"}, // no data
	}

	assert.Equal(t, []string{"2024-06"}, DroughtLikeMonths(monthly))
}

func TestHeatDaysInMonth(t *testing.T) {
	daily := DailySeries{
		{Date: day(2024, 7, 1), TMaxSource: fptr(36.0)},
		{Date: day(2024, 7, 2), TMaxSource: fptr(35.0)},
		{Date: day(2024, 7, 3), TMaxSource: fptr(34.0)},
		{Date: day(2024, 8, 1), TMaxSource: fptr(40.0)}, // different month
		{Date: day(2024, 7, 4)},                         // missing tmax
	}

	assert.Equal(t, 2, HeatDaysInMonth(daily, time.July, 35.0))
	assert.Equal(t, 1, HeatDaysInMonth(daily, time.August, 35.0))
	assert.Equal(t, 0, HeatDaysInMonth(daily, time.September, 35.0))
}
