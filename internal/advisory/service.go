// Package advisory orchestrates the area-weather pipeline: polygon sampling,
// per-point fetches, spatial aggregation, climate rollups and alert
// evaluation, plus the static hazelnut care guide.
package advisory

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/frnietz/agroclimate/internal/climate"
	"github.com/frnietz/agroclimate/internal/fields"
	"github.com/frnietz/agroclimate/internal/geo"
	"github.com/frnietz/agroclimate/internal/meteo"
)

// DefaultMaxSamplePoints bounds the per-polygon sample grid, and with it the
// number of remote fetches one action can issue.
const DefaultMaxSamplePoints = 9

// Service wires the weather source, the field store and the climate pipeline
// together. Every exported method is one user-triggered action: it runs to
// completion or fails as a whole, and partial results are discarded.
type Service struct {
	source     meteo.Source
	fields     *fields.Store
	sunnyCodes []int
	tz         string
	maxPoints  int
}

// NewService creates the advisory service. A nil sunnyCodes falls back to
// the default clear-sky set; a non-positive maxPoints falls back to
// DefaultMaxSamplePoints.
func NewService(source meteo.Source, store *fields.Store, sunnyCodes []int, tz string, maxPoints int) *Service {
	if len(sunnyCodes) == 0 {
		sunnyCodes = climate.DefaultSunnyCodes
	}
	if maxPoints < 1 {
		maxPoints = DefaultMaxSamplePoints
	}
	return &Service{source: source, fields: store, sunnyCodes: sunnyCodes, tz: tz, maxPoints: maxPoints}
}

// Fields exposes the underlying field store.
func (s *Service) Fields() *fields.Store {
	return s.fields
}

// Scope selects what a computation runs over: an explicit coordinate, a saved
// field, or an ad-hoc polygon. Exactly one of the three should be set.
type Scope struct {
	Lat       *float64
	Lon       *float64
	FieldName string
	Polygon   *geo.Polygon
	MaxPoints int
}

// resolve turns the scope into the set of sample coordinates.
func (s *Service) resolve(scope Scope) ([]geo.Coordinate, error) {
	switch {
	case scope.Lat != nil && scope.Lon != nil:
		return []geo.Coordinate{{Lat: *scope.Lat, Lon: *scope.Lon}}, nil
	case scope.Polygon != nil:
		return geo.SamplePoints(*scope.Polygon, s.samplePointBound(scope)), nil
	case scope.FieldName != "":
		poly, err := s.fields.Get(scope.FieldName)
		if err != nil {
			return nil, err
		}
		return geo.SamplePoints(poly, s.samplePointBound(scope)), nil
	default:
		return nil, fmt.Errorf("%w: scope needs a coordinate, a field name or a polygon", geo.ErrInvalidGeometry)
	}
}

// samplePointBound prefers the scope's explicit bound over the configured
// service default.
func (s *Service) samplePointBound(scope Scope) int {
	if scope.MaxPoints > 0 {
		return scope.MaxPoints
	}
	return s.maxPoints
}

// PointDaily fetches the archive for one coordinate and reconciles the
// source-reported daily extremes with the hourly-derived summary.
func (s *Service) PointDaily(ctx context.Context, lat, lon float64, start, end string) (climate.DailySeries, error) {
	payload, err := s.source.FetchArchive(ctx, lat, lon, start, end, s.tz)
	if err != nil {
		return nil, err
	}

	hourly := climate.HourlyFromPayload(payload)
	daily := climate.MergeDaily(climate.DailyFromPayload(payload), climate.SummarizeDaily(hourly))
	return climate.ApplySunny(daily, s.sunnyCodes), nil
}

// DailyForScope produces the area-representative daily series for the scope:
// a single point passes through untouched, a polygon is sampled and the
// per-point series are averaged. The per-point fetches are independent reads
// and fan out concurrently; results are joined by sample order so the
// aggregation input is deterministic. Any point's failure aborts the action.
func (s *Service) DailyForScope(ctx context.Context, scope Scope, start, end string) (climate.DailySeries, []geo.Coordinate, error) {
	points, err := s.resolve(scope)
	if err != nil {
		return nil, nil, err
	}

	perPoint := make([]climate.DailySeries, len(points))
	errs := make([]error, len(points))

	var wg sync.WaitGroup
	for i, pt := range points {
		i, pt := i, pt
		wg.Add(1)
		go func() {
			defer wg.Done()
			perPoint[i], errs[i] = s.PointDaily(ctx, pt.Lat, pt.Lon, start, end)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			log.Printf("point fetch failed at (%.4f, %.4f): %v", points[i].Lat, points[i].Lon, err)
			return nil, nil, err
		}
	}

	if len(perPoint) == 1 {
		return perPoint[0], points, nil
	}
	agg := climate.AggregateDaily(perPoint)
	return climate.ApplySunny(agg, s.sunnyCodes), points, nil
}

// ForecastDaily fetches the short-range forecast for the scope's
// representative point (the coordinate itself, or the polygon's vertex mean)
// and reduces it to a daily series.
func (s *Service) ForecastDaily(ctx context.Context, scope Scope, days int) (climate.DailySeries, error) {
	var at geo.Coordinate
	switch {
	case scope.Lat != nil && scope.Lon != nil:
		at = geo.Coordinate{Lat: *scope.Lat, Lon: *scope.Lon}
	case scope.Polygon != nil:
		at = scope.Polygon.VertexMean()
	case scope.FieldName != "":
		poly, err := s.fields.Get(scope.FieldName)
		if err != nil {
			return nil, err
		}
		at = poly.VertexMean()
	default:
		return nil, fmt.Errorf("%w: scope needs a coordinate, a field name or a polygon", geo.ErrInvalidGeometry)
	}

	payload, err := s.source.FetchForecast(ctx, at.Lat, at.Lon, days, s.tz)
	if err != nil {
		return nil, err
	}

	hourly := climate.HourlyFromPayload(payload)
	daily := climate.MergeDaily(climate.DailyFromPayload(payload), climate.SummarizeDaily(hourly))
	return climate.ApplySunny(daily, s.sunnyCodes), nil
}

// GDDReport is the growing-degree-day computation result.
type GDDReport struct {
	BaseC       float64            `json:"base_c"`
	CapC        *float64           `json:"cap_c,omitempty"`
	Values      []climate.GDDValue `json:"values"`
	SeasonTotal float64            `json:"season_total"`
	Points      []geo.Coordinate   `json:"points"`
}

// GDD computes daily growing degree days and the season total for the scope.
// An empty value list means no day carried both min and max temperature.
func (s *Service) GDD(ctx context.Context, scope Scope, start, end string, baseC float64, capC *float64) (*GDDReport, error) {
	daily, points, err := s.DailyForScope(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}

	values := climate.ComputeGDD(daily, baseC, capC)
	return &GDDReport{
		BaseC:       baseC,
		CapC:        capC,
		Values:      values,
		SeasonTotal: climate.SeasonTotal(values),
		Points:      points,
	}, nil
}

// MonthlyReport bundles the monthly climate rollup with weekly precipitation
// buckets and the drought heuristic.
type MonthlyReport struct {
	Monthly       []climate.MonthlyRecord `json:"monthly"`
	Weekly        []climate.WeeklyBucket  `json:"weekly"`
	DroughtMonths []string                `json:"drought_months,omitempty"`
	Points        []geo.Coordinate        `json:"points"`
}

// MonthlyClimate rolls the scope's daily series up into monthly and weekly
// summaries.
func (s *Service) MonthlyClimate(ctx context.Context, scope Scope, start, end string) (*MonthlyReport, error) {
	daily, points, err := s.DailyForScope(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}

	monthly := climate.MonthlyRollup(daily)
	return &MonthlyReport{
		Monthly:       monthly,
		Weekly:        climate.WeeklyPrecip(daily, time.Monday),
		DroughtMonths: climate.DroughtLikeMonths(monthly),
		Points:        points,
	}, nil
}

// AlertReport is the outcome of one on-demand alert evaluation.
type AlertReport struct {
	WeeklyRain climate.WeeklyRainResult `json:"weekly_rain"`
	Heat       climate.HeatResult       `json:"heat"`
	Peek       *climate.ForecastPeek    `json:"forecast_peek,omitempty"`
}

// EvaluateAlerts applies the drought-week and heat-day rules to the scope's
// historical series and, when requested, peeks at the short forecast for an
// informational early warning.
func (s *Service) EvaluateAlerts(ctx context.Context, scope Scope, start, end string, rain climate.WeeklyRainRule, heat climate.HeatRule, peek bool) (*AlertReport, error) {
	daily, _, err := s.DailyForScope(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}

	report := &AlertReport{
		WeeklyRain: climate.EvaluateWeeklyRain(climate.WeeklyPrecip(daily, time.Monday), rain),
		Heat:       climate.EvaluateHeat(daily, heat),
	}

	if peek {
		forecast, err := s.ForecastDaily(ctx, scope, climate.DefaultForecastPeekDays)
		if err != nil {
			// The peek is informational; its failure must not void the
			// historical evaluation.
			log.Printf("forecast peek failed: %v", err)
		} else {
			p := climate.EvaluateForecastPeek(forecast, rain, heat)
			report.Peek = &p
		}
	}
	return report, nil
}
