package api

import (
	"errors"
	"net/http"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/services/astro"
	"AstroInsight/internal/usecase"
	xhttp "AstroInsight/pkg/http"
	applogger "AstroInsight/pkg/logger"
	"AstroInsight/pkg/util"

	"github.com/labstack/echo/v4"
)

// ServiceInfo is served on the root route.
type ServiceInfo struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ChartEchoHandler exposes the chart use cases over Echo.
type ChartEchoHandler struct {
	logger *applogger.Logger
	charts *usecase.ChartService
	info   ServiceInfo
}

func NewChartEchoHandler(logger *applogger.Logger, charts *usecase.ChartService, version string) *ChartEchoHandler {
	return &ChartEchoHandler{
		logger: logger,
		charts: charts,
		info:   ServiceInfo{Service: "AstroInsight", Status: "active", Version: version},
	}
}

func (h *ChartEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.GET("/today", h.Today)
	g.POST("/natal", h.Natal)
	g.POST("/transits", h.Transits)
	g.POST("/solar-return", h.SolarReturn)
	g.POST("/compatibility", h.Compatibility)
	g.POST("/composite", h.Composite)
	g.POST("/analyze", h.Analyze)
}

func (h *ChartEchoHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.info)
}

func (h *ChartEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Today serves the current sky, or the sky at ?at= when given.
func (h *ChartEchoHandler) Today(c echo.Context) error {
	var (
		res models.SkyResult
		err error
	)
	if at := c.QueryParam("at"); at != "" {
		t, ok := util.ParseTime(at)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("cannot parse %q", at).WithField("at"))
		}
		res, err = h.charts.SkyAt(c.Request().Context(), t)
	} else {
		res, err = h.charts.Today(c.Request().Context())
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=60")
	}
	if err != nil {
		return h.fail(c, "today", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) Natal(c echo.Context) error {
	req := &models.BirthData{}
	if verrs := xhttp.BindRequest(c, req); verrs != nil {
		return xhttp.ValidationResponse(c, verrs)
	}
	res, err := h.charts.Natal(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, "natal", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) Transits(c echo.Context) error {
	req := &models.TransitRequest{}
	if verrs := xhttp.BindRequest(c, req); verrs != nil {
		return xhttp.ValidationResponse(c, verrs)
	}
	res, err := h.charts.Transits(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, "transits", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) SolarReturn(c echo.Context) error {
	req := &models.SolarReturnRequest{}
	if verrs := xhttp.BindRequest(c, req); verrs != nil {
		return xhttp.ValidationResponse(c, verrs)
	}
	res, err := h.charts.SolarReturn(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, "solar_return", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) Compatibility(c echo.Context) error {
	req := &models.PairRequest{}
	if verrs := xhttp.BindRequest(c, req); verrs != nil {
		return xhttp.ValidationResponse(c, verrs)
	}
	res, err := h.charts.Compatibility(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, "compatibility", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) Composite(c echo.Context) error {
	req := &models.PairRequest{}
	if verrs := xhttp.BindRequest(c, req); verrs != nil {
		return xhttp.ValidationResponse(c, verrs)
	}
	res, err := h.charts.CompositeChart(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, "composite", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ChartEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verrs := xhttp.BindRequest(c, req); verrs != nil {
		return xhttp.ValidationResponse(c, verrs)
	}
	res, err := h.charts.Analyze(*req)
	if err != nil {
		return h.fail(c, "analyze", err)
	}
	return xhttp.SuccessResponse(c, res)
}

// fail maps a use case error onto an AppError response.
func (h *ChartEchoHandler) fail(c echo.Context, op string, err error) error {
	appErr := toAppError(err)
	fields := []applogger.Field{
		applogger.String("op", op),
		applogger.Int("status", appErr.Status),
		applogger.Error(err),
	}
	l := h.logger.WithContext(c.Request().Context())
	if appErr.Status >= http.StatusInternalServerError {
		l.Error("chart request failed", fields...)
	} else {
		l.Warn("chart request rejected", fields...)
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func toAppError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, usecase.ErrEphemeris):
		return xhttp.BadGatewayError("ephemeris unavailable").WithError(err)
	case errors.Is(err, astro.ErrUnresolvedHouse):
		return xhttp.UnprocessableEntityError(err.Error()).WithError(err)
	case errors.Is(err, astro.ErrInvalidInput):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	default:
		return xhttp.InternalError("internal error").WithError(err)
	}
}
