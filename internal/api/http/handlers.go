package httpapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frnietz/agroclimate/internal/advisory"
	"github.com/frnietz/agroclimate/internal/climate"
	"github.com/frnietz/agroclimate/internal/geo"
)

// wantsCSV honors both the ?format=csv query and an Accept: text/csv header.
func wantsCSV(c *fiber.Ctx) bool {
	return c.Query("format") == "csv" || strings.Contains(c.Get(fiber.HeaderAccept), "text/csv")
}

func (h *handlers) geocode(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name query parameter is required")
	}
	count := c.QueryInt("count", 5)

	places, err := h.geocoder.Geocode(c.Context(), name, count)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"results": places})
}

func (h *handlers) weatherDaily(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lat")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lon")
	}

	rng := dateRange{Start: c.Query("start"), End: c.Query("end")}
	if err := validate.Struct(rng); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := rng.check(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	daily, err := h.svc.PointDaily(c.Context(), lat, lon, rng.Start, rng.End)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"daily": daily})
}

func (h *handlers) weatherArea(c *fiber.Ctx) error {
	var req struct {
		scopeRequest
		dateRange
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := req.check(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	scope, err := req.toScope()
	if err != nil {
		return respondDomainError(c, err)
	}
	if scope.Polygon == nil && scope.FieldName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "area request needs a polygon geometry or a field name")
	}

	daily, points, err := h.svc.DailyForScope(c.Context(), scope, req.Start, req.End)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"points": points,
		"daily":  daily,
	})
}

func (h *handlers) climateGDD(c *fiber.Ctx) error {
	var req struct {
		scopeRequest
		dateRange
		BaseC *float64 `json:"base_c"`
		CapC  *float64 `json:"cap_c"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := req.check(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	scope, err := req.toScope()
	if err != nil {
		return respondDomainError(c, err)
	}

	baseC := 10.0
	if req.BaseC != nil {
		baseC = *req.BaseC
	}

	report, err := h.svc.GDD(c.Context(), scope, req.Start, req.End, baseC, req.CapC)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(report)
}

func (h *handlers) climateMonthly(c *fiber.Ctx) error {
	var req struct {
		scopeRequest
		dateRange
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := req.check(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	scope, err := req.toScope()
	if err != nil {
		return respondDomainError(c, err)
	}

	report, err := h.svc.MonthlyClimate(c.Context(), scope, req.Start, req.End)
	if err != nil {
		return respondDomainError(c, err)
	}

	if wantsCSV(c) {
		out, err := advisory.MonthlyCSV(report.Monthly)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="monthly_climate_summary.csv"`)
		return c.Send(out)
	}
	return c.JSON(report)
}

func (h *handlers) alertsEvaluate(c *fiber.Ctx) error {
	var req struct {
		scopeRequest
		dateRange
		RainMonths      []int    `json:"rain_months" validate:"omitempty,dive,min=1,max=12"`
		RainThresholdMM *float64 `json:"rain_threshold_mm"`
		HeatMonth       int      `json:"heat_month" validate:"omitempty,min=1,max=12"`
		HeatThresholdC  *float64 `json:"heat_threshold_c"`
		HeatMinDays     int      `json:"heat_min_days" validate:"omitempty,min=1"`
		ForecastPeek    bool     `json:"forecast_peek"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := req.check(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	scope, err := req.toScope()
	if err != nil {
		return respondDomainError(c, err)
	}

	rain := climate.WeeklyRainRule{ThresholdMM: climate.DefaultWeeklyRainThresholdMM}
	for _, m := range req.RainMonths {
		rain.Months = append(rain.Months, time.Month(m))
	}
	if req.RainThresholdMM != nil {
		rain.ThresholdMM = *req.RainThresholdMM
	}

	heat := climate.HeatRule{
		Month:      time.Month(req.HeatMonth),
		ThresholdC: climate.DefaultHeatThresholdC,
		MinDays:    climate.DefaultHeatMinDays,
	}
	if req.HeatMonth == 0 {
		heat.Month = time.July
	}
	if req.HeatThresholdC != nil {
		heat.ThresholdC = *req.HeatThresholdC
	}
	if req.HeatMinDays > 0 {
		heat.MinDays = req.HeatMinDays
	}

	report, err := h.svc.EvaluateAlerts(c.Context(), scope, req.Start, req.End, rain, heat, req.ForecastPeek)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(report)
}

func (h *handlers) guide(c *fiber.Ctx) error {
	guide := advisory.HazelnutGuide()

	if wantsCSV(c) {
		out, err := advisory.GuideCSV(guide)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="hazelnut_monthly_guide.csv"`)
		return c.Send(out)
	}
	return c.JSON(fiber.Map{"guide": guide})
}

func (h *handlers) fieldsList(c *fiber.Ctx) error {
	names, err := h.svc.Fields().List()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"fields": names})
}

func (h *handlers) fieldsGet(c *fiber.Ctx) error {
	poly, err := h.svc.Fields().Get(c.Params("name"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.JSON(poly)
}

func (h *handlers) fieldsAdd(c *fiber.Ctx) error {
	var req struct {
		Name     string          `json:"name" validate:"required"`
		Geometry json.RawMessage `json:"geometry" validate:"required"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}

	poly, err := geo.ParseGeoJSON(req.Geometry)
	if err != nil {
		return respondDomainError(c, err)
	}
	if err := h.svc.Fields().Add(req.Name, poly); err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": req.Name})
}

func (h *handlers) fieldsRename(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.svc.Fields().Rename(c.Params("name"), req.Name); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"name": req.Name})
}

func (h *handlers) fieldsDelete(c *fiber.Ctx) error {
	if err := h.svc.Fields().Delete(c.Params("name")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
