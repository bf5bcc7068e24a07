package rest

import (
	"context"
	"errors"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
	"myStyleCrate/pkg/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		recommendService RecommendService
		timeout          time.Duration
	}

	RecommendService interface {
		Recommend(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
		Preferences(ctx context.Context, userID uint) (domain.TopPreferences, error)
	}
)

func NewRecommendHandler(recommendService RecommendService) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
		timeout:          10 * time.Second,
	}
}

func (h *RecommendHandler) GetRecommendations(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	limit := 0
	if raw := c.QueryParam("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid n"})
		}
		limit = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	started := time.Now()
	metrics.RecommendRequests.Inc()

	recommendations, err := h.recommendService.Recommend(ctx, userID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			return c.JSON(http.StatusOK, fres.Response.StatusOK([]domain.Recommendation{}))
		}
		logger.Error("Failed to build recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendLatency.Observe(time.Since(started).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recommendations))
}

func (h *RecommendHandler) GetPreferences(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prefs, err := h.recommendService.Preferences(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.TopPreferences{}))
		}
		logger.Error("Failed to aggregate preferences", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(prefs))
}
