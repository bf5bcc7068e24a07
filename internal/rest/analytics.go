package rest

import (
	"context"
	"myStyleCrate/business/analytics"
	"myStyleCrate/pkg/logger"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	AnalyticsHandler struct {
		analyticsService AnalyticsService
		timeout          time.Duration
	}

	AnalyticsService interface {
		GetOverview(ctx context.Context) (analytics.Overview, error)
	}
)

func NewAnalyticsHandler(analyticsService AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		timeout:          10 * time.Second,
	}
}

func (h *AnalyticsHandler) GetOverview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	overview, err := h.analyticsService.GetOverview(ctx)
	if err != nil {
		logger.Error("Failed to build analytics overview", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(overview))
}
