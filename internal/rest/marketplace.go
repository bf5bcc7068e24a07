package rest

import (
	"context"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	MarketplaceHandler struct {
		marketplaceService MarketplaceService
		timeout            time.Duration
	}

	MarketplaceService interface {
		GetListings(ctx context.Context, limit int) ([]domain.Product, error)
		Purchase(ctx context.Context, userID uint, listingID uint64) (domain.Product, error)
	}
)

func NewMarketplaceHandler(marketplaceService MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceService: marketplaceService,
		timeout:            10 * time.Second,
	}
}

func (h *MarketplaceHandler) GetListings(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	listings, err := h.marketplaceService.GetListings(ctx, limit)
	if err != nil {
		logger.Error("Failed to get marketplace listings", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(listings))
}

func (h *MarketplaceHandler) Purchase(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	listingIdStr := c.Param("id")
	listingId, err := strconv.ParseUint(listingIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid listing id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	listing, err := h.marketplaceService.Purchase(ctx, userID, listingId)
	if err != nil {
		logger.Error("Failed to purchase listing", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "no longer available") ||
			strings.Contains(err.Error(), "not a marketplace listing") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(listing))
}
