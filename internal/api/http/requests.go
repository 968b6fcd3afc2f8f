package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frnietz/agroclimate/internal/advisory"
	"github.com/frnietz/agroclimate/internal/geo"
)

const dateLayout = "2006-01-02"

// dateRange holds the historical window of a request, dates in YYYY-MM-DD.
type dateRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

func (d dateRange) check() error {
	start, err := time.Parse(dateLayout, d.Start)
	if err != nil {
		return err
	}
	end, err := time.Parse(dateLayout, d.End)
	if err != nil {
		return err
	}
	if start.After(end) {
		return errors.New("start date must not be after end date")
	}
	return nil
}

// scopeRequest selects the computation target: a coordinate, a saved field,
// or an inline GeoJSON polygon (bare geometry or Feature).
type scopeRequest struct {
	Lat       *float64        `json:"lat"`
	Lon       *float64        `json:"lon"`
	Field     string          `json:"field"`
	Geometry  json.RawMessage `json:"geometry"`
	MaxPoints int             `json:"max_points" validate:"omitempty,min=1,max=64"`
}

func (r scopeRequest) toScope() (advisory.Scope, error) {
	scope := advisory.Scope{
		Lat:       r.Lat,
		Lon:       r.Lon,
		FieldName: r.Field,
		MaxPoints: r.MaxPoints,
	}

	if len(r.Geometry) > 0 {
		poly, err := geo.ParseGeoJSON(r.Geometry)
		if err != nil {
			return advisory.Scope{}, err
		}
		scope.Polygon = &poly
	}

	if scope.Polygon == nil && scope.FieldName == "" && (scope.Lat == nil || scope.Lon == nil) {
		return advisory.Scope{}, fmt.Errorf("%w: request needs lat/lon, a field name, or a polygon geometry", geo.ErrInvalidGeometry)
	}
	return scope, nil
}

// bindBody parses and validates a JSON request body.
func bindBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
