package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/frnietz/agroclimate/internal/advisory"
	"github.com/frnietz/agroclimate/internal/fields"
	"github.com/frnietz/agroclimate/internal/geo"
	"github.com/frnietz/agroclimate/internal/meteo"
)

var validate = validator.New()

// handlers carries the dependencies shared by all endpoints.
type handlers struct {
	svc      *advisory.Service
	geocoder *meteo.Geocoder
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *advisory.Service, geocoder *meteo.Geocoder) {
	h := &handlers{svc: svc, geocoder: geocoder}

	v1 := app.Group("/api/v1")

	v1.Get("/geocode", h.geocode)

	v1.Get("/weather/daily", h.weatherDaily)
	v1.Post("/weather/area", h.weatherArea)

	v1.Post("/climate/gdd", h.climateGDD)
	v1.Post("/climate/monthly", h.climateMonthly)

	v1.Post("/alerts/evaluate", h.alertsEvaluate)

	v1.Get("/guide", h.guide)

	v1.Get("/fields", h.fieldsList)
	v1.Post("/fields", h.fieldsAdd)
	v1.Get("/fields/:name", h.fieldsGet)
	v1.Put("/fields/:name", h.fieldsRename)
	v1.Delete("/fields/:name", h.fieldsDelete)
}

// respondDomainError translates domain sentinel errors to HTTP responses.
// An empty-payload range is informational and keeps the 200 status so the
// rest of the client UI stays usable.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, meteo.ErrNoData):
		return c.JSON(fiber.Map{
			"no_data": true,
			"message": err.Error(),
		})
	case errors.Is(err, meteo.ErrSourceUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	case errors.Is(err, geo.ErrInvalidGeometry):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, fields.ErrFieldNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, fields.ErrFieldExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
