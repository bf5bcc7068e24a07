package rest

import (
	"context"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
	"myStyleCrate/pkg/metrics"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SwipeHandler struct {
		validate     *validator.Validate
		swipeService SwipeService
		timeout      time.Duration
	}

	SwipeService interface {
		RecordSwipe(ctx context.Context, userID uint, productID uint64, liked bool) (domain.SwipeRecord, error)
		GetSwipeHistory(ctx context.Context, userID uint) ([]domain.SwipeRecord, error)
		LikeItem(ctx context.Context, userID uint, productID uint64) error
		UnlikeItem(ctx context.Context, userID uint, productID uint64) error
		GetLikedItems(ctx context.Context, userID uint) ([]domain.Product, error)
	}

	SwipeInput struct {
		ProductID uint64 `json:"product_id" validate:"required"`
		Liked     *bool  `json:"liked" validate:"required"`
	}
)

func NewSwipeHandler(swipeService SwipeService) *SwipeHandler {
	return &SwipeHandler{
		validate:     validator.New(),
		swipeService: swipeService,
		timeout:      10 * time.Second,
	}
}

func (h *SwipeHandler) RecordSwipe(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request SwipeInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate swipe request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	swipe, err := h.swipeService.RecordSwipe(ctx, userID, request.ProductID, *request.Liked)
	if err != nil {
		logger.Error("Failed to record swipe", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SwipesRecorded.WithLabelValues(strconv.FormatBool(swipe.Liked)).Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(swipe))
}

func (h *SwipeHandler) GetSwipeHistory(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	swipes, err := h.swipeService.GetSwipeHistory(ctx, userID)
	if err != nil {
		logger.Error("Failed to get swipe history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(swipes))
}

func (h *SwipeHandler) LikeItem(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	productIdStr := c.Param("product_id")
	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.swipeService.LikeItem(ctx, userID, productId); err != nil {
		logger.Error("Failed to like item", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("Item liked successfully"))
}

func (h *SwipeHandler) UnlikeItem(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	productIdStr := c.Param("product_id")
	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.swipeService.UnlikeItem(ctx, userID, productId); err != nil {
		logger.Error("Failed to unlike item", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Item unliked successfully"))
}

func (h *SwipeHandler) GetLikedItems(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.swipeService.GetLikedItems(ctx, userID)
	if err != nil {
		logger.Error("Failed to get liked items", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}
