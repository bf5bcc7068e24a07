package rest

import (
	"context"
	"errors"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, userID uint, cfg domain.SubscriptionConfig) (domain.Subscription, error)
	GetSubscription(ctx context.Context, id uint) (domain.Subscription, error)
	GetUserSubscriptions(ctx context.Context, userID uint) ([]domain.Subscription, error)
	GetDeliveries(ctx context.Context, subscriptionID uint) ([]domain.DeliveryItem, error)
	UpdateConfig(ctx context.Context, id uint, cfg domain.SubscriptionConfig) (domain.Subscription, error)
	CancelSubscription(ctx context.Context, id uint) error
	SimulateDelivery(ctx context.Context, id uint) ([]domain.DeliveryItem, error)
	ProcessReturn(ctx context.Context, subscriptionID, deliveryItemID uint, reason string) (domain.Product, int, error)
}

type SubscriptionHandler struct {
	subscriptionService SubscriptionService
	validator           *validator.Validate
	timeout             time.Duration
}

func NewSubscriptionHandler(subscriptionService SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		validator:           validator.New(),
		timeout:             10 * time.Second,
	}
}

type SubscriptionConfigRequest struct {
	Plan              string `json:"plan" validate:"required"`
	PackageType       string `json:"package_type" validate:"required"`
	Tier              string `json:"tier" validate:"required"`
	IncludeSecondHand bool   `json:"include_second_hand"`
	FestivePackage    string `json:"festive_package"`
}

type ReturnRequest struct {
	DeliveryItemID uint   `json:"delivery_item_id" validate:"required"`
	Reason         string `json:"reason" validate:"required"`
}

func (r SubscriptionConfigRequest) toConfig() domain.SubscriptionConfig {
	festive := r.FestivePackage
	if festive == "" {
		festive = domain.FestiveNone
	}
	return domain.SubscriptionConfig{
		Plan:              r.Plan,
		PackageType:       r.PackageType,
		Tier:              r.Tier,
		IncludeSecondHand: r.IncludeSecondHand,
		FestivePackage:    festive,
	}
}

// subscriptionError maps service errors onto HTTP statuses. Unknown config
// values are client errors, lost version races are conflicts.
func subscriptionError(c echo.Context, err error) error {
	switch {
	case domain.IsConfigError(err):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrVersionConflict):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	case strings.Contains(err.Error(), "not found"):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case strings.Contains(err.Error(), "not active"),
		strings.Contains(err.Error(), "already returned"),
		strings.Contains(err.Error(), "already cancelled"):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}

// loadOwnedSubscription fetches the subscription and enforces that it
// belongs to the logged-in user unless the caller is an admin.
func (h *SubscriptionHandler) loadOwnedSubscription(ctx context.Context, c echo.Context, id uint) (domain.Subscription, bool) {
	sub, err := h.subscriptionService.GetSubscription(ctx, id)
	if err != nil {
		_ = subscriptionError(c, err)
		return domain.Subscription{}, false
	}

	userID, _ := c.Get("user_id").(uint)
	role, _ := c.Get("role").(string)
	if sub.UserID != userID && !strings.EqualFold(role, "admin") {
		_ = c.JSON(http.StatusForbidden, ResponseError{Message: "you can only access your own subscriptions"})
		return domain.Subscription{}, false
	}

	return sub, true
}

func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SubscriptionConfigRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate subscription request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sub, err := h.subscriptionService.CreateSubscription(ctx, userID, req.toConfig())
	if err != nil {
		logger.Error("Failed to create subscription", err)
		return subscriptionError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "Subscription successfully created",
		"subscription": sub,
	})
}

func (h *SubscriptionHandler) GetSubscription(c echo.Context) error {
	id, err := parseSubscriptionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sub, ok := h.loadOwnedSubscription(ctx, c, id)
	if !ok {
		return nil
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "successfully find subscription by id",
		"subscription": sub,
	})
}

func (h *SubscriptionHandler) GetMySubscriptions(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	subs, err := h.subscriptionService.GetUserSubscriptions(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user subscriptions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "successfully get subscriptions",
		"subscriptions": subs,
	})
}

func (h *SubscriptionHandler) UpdateSubscription(c echo.Context) error {
	id, err := parseSubscriptionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req SubscriptionConfigRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate subscription request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if _, ok := h.loadOwnedSubscription(ctx, c, id); !ok {
		return nil
	}

	sub, err := h.subscriptionService.UpdateConfig(ctx, id, req.toConfig())
	if err != nil {
		logger.Error("Failed to update subscription", err)
		return subscriptionError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "successfully update subscription",
		"subscription": sub,
	})
}

func (h *SubscriptionHandler) CancelSubscription(c echo.Context) error {
	id, err := parseSubscriptionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if _, ok := h.loadOwnedSubscription(ctx, c, id); !ok {
		return nil
	}

	if err := h.subscriptionService.CancelSubscription(ctx, id); err != nil {
		logger.Error("Failed to cancel subscription", err)
		return subscriptionError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "subscription successfully cancelled",
		"subscription_id": id,
	})
}

func (h *SubscriptionHandler) GetDeliveries(c echo.Context) error {
	id, err := parseSubscriptionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if _, ok := h.loadOwnedSubscription(ctx, c, id); !ok {
		return nil
	}

	items, err := h.subscriptionService.GetDeliveries(ctx, id)
	if err != nil {
		logger.Error("Failed to find deliveries", err)
		return subscriptionError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get deliveries",
		"deliveries": items,
	})
}

func (h *SubscriptionHandler) SimulateDelivery(c echo.Context) error {
	id, err := parseSubscriptionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if _, ok := h.loadOwnedSubscription(ctx, c, id); !ok {
		return nil
	}

	items, err := h.subscriptionService.SimulateDelivery(ctx, id)
	if err != nil {
		logger.Error("Failed to simulate delivery", err)
		return subscriptionError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "delivery successfully simulated",
		"deliveries": items,
	})
}

func (h *SubscriptionHandler) ProcessReturn(c echo.Context) error {
	id, err := parseSubscriptionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req ReturnRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate return request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if _, ok := h.loadOwnedSubscription(ctx, c, id); !ok {
		return nil
	}

	listing, rewardPoints, err := h.subscriptionService.ProcessReturn(ctx, id, req.DeliveryItemID, req.Reason)
	if err != nil {
		logger.Error("Failed to process return", err)
		return subscriptionError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":       "return processed, item listed on marketplace",
		"listing":       listing,
		"reward_points": rewardPoints,
	})
}

func parseSubscriptionID(c echo.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid subscription id", err)
		return 0, errors.New("invalid subscription id")
	}
	return uint(id), nil
}
