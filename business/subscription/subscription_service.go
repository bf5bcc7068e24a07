package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myStyleCrate/business/marketplace"
	"myStyleCrate/business/pricing"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
)

const (
	SubjectReturnReward   = "Your return was processed!"
	EmailBodyReturnReward = `Hi %v, we received your returned item and credited %v reward points to your account. Thanks for keeping clothes in circulation!`
)

// SubscriptionRepository contract interface
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	FindByID(ctx context.Context, id uint) (domain.Subscription, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Subscription, error)
	// UpdateWithVersion performs a compare-and-swap on the version column
	// and returns domain.ErrVersionConflict when the row moved underneath.
	UpdateWithVersion(ctx context.Context, sub *domain.Subscription) error
	CreateDeliveryItems(ctx context.Context, items []domain.DeliveryItem) error
	FindDeliveryItems(ctx context.Context, subscriptionID uint) ([]domain.DeliveryItem, error)
	FindDeliveryItem(ctx context.Context, id uint) (domain.DeliveryItem, error)
	MarkReturned(ctx context.Context, id uint, reason string, at time.Time) error
}

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	CreditRewardPoints(ctx context.Context, userID uint, points int) error
}

// DeliverySelector picks the products for one simulated delivery.
type DeliverySelector interface {
	SelectDeliveryItems(ctx context.Context, cfg domain.SubscriptionConfig) ([]domain.DeliveryItem, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

type subscriptionService struct {
	subRepo     SubscriptionRepository
	productRepo ProductRepository
	userRepo    UserRepository
	selector    DeliverySelector
	notifRepo   NotificationRepository
}

func NewSubscriptionService(
	subRepo SubscriptionRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	selector DeliverySelector,
	notifRepo NotificationRepository,
) *subscriptionService {
	return &subscriptionService{
		subRepo:     subRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		selector:    selector,
		notifRepo:   notifRepo,
	}
}

// CreateSubscription validates and prices the config, then persists the
// subscription with its breakdown.
func (s *subscriptionService) CreateSubscription(ctx context.Context, userID uint, cfg domain.SubscriptionConfig) (domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return domain.Subscription{}, fmt.Errorf("context error: %w", err)
	}

	breakdown, err := pricing.ComputePrice(cfg)
	if err != nil {
		logger.Error("Invalid subscription config", err)
		return domain.Subscription{}, err
	}

	sub := domain.Subscription{
		UserID:            userID,
		Plan:              cfg.Plan,
		PackageType:       cfg.PackageType,
		Tier:              cfg.Tier,
		IncludeSecondHand: cfg.IncludeSecondHand,
		FestivePackage:    cfg.FestivePackage,
		Status:            domain.SubscriptionStatusActive,
		BasePrice:         breakdown.Base,
		FestiveAddon:      breakdown.FestiveAddon,
		Discount:          breakdown.Discount,
		TotalPrice:        breakdown.Total,
		Version:           1,
	}

	if err := s.subRepo.Create(ctx, &sub); err != nil {
		logger.Error("Failed to create subscription", err)
		return domain.Subscription{}, fmt.Errorf("failed to create subscription: %w", err)
	}

	logger.Info("subscription created",
		"user_id", userID,
		"package_type", cfg.PackageType,
		"tier", cfg.Tier,
		"total", breakdown.Total,
	)

	return sub, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id uint) (domain.Subscription, error) {
	return s.subRepo.FindByID(ctx, id)
}

func (s *subscriptionService) GetUserSubscriptions(ctx context.Context, userID uint) ([]domain.Subscription, error) {
	return s.subRepo.FindByUser(ctx, userID)
}

func (s *subscriptionService) GetDeliveries(ctx context.Context, subscriptionID uint) ([]domain.DeliveryItem, error) {
	return s.subRepo.FindDeliveryItems(ctx, subscriptionID)
}

// UpdateConfig re-prices the subscription under a version check. The
// pure calculator guarantees the stored breakdown cannot drift from the
// config it was computed for.
func (s *subscriptionService) UpdateConfig(ctx context.Context, id uint, cfg domain.SubscriptionConfig) (domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return domain.Subscription{}, fmt.Errorf("context error: %w", err)
	}

	sub, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Subscription not found for update", err)
		return domain.Subscription{}, err
	}

	breakdown, err := pricing.ComputePrice(cfg)
	if err != nil {
		logger.Error("Invalid subscription config", err)
		return domain.Subscription{}, err
	}

	sub.Plan = cfg.Plan
	sub.PackageType = cfg.PackageType
	sub.Tier = cfg.Tier
	sub.IncludeSecondHand = cfg.IncludeSecondHand
	sub.FestivePackage = cfg.FestivePackage
	sub.BasePrice = breakdown.Base
	sub.FestiveAddon = breakdown.FestiveAddon
	sub.Discount = breakdown.Discount
	sub.TotalPrice = breakdown.Total

	if err := s.subRepo.UpdateWithVersion(ctx, &sub); err != nil {
		logger.Error("Failed to update subscription", err)
		return domain.Subscription{}, err
	}

	return sub, nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, id uint) error {
	sub, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Subscription not found for cancel", err)
		return err
	}

	if sub.Status == domain.SubscriptionStatusCancelled {
		return errors.New("subscription already cancelled")
	}

	sub.Status = domain.SubscriptionStatusCancelled
	if err := s.subRepo.UpdateWithVersion(ctx, &sub); err != nil {
		logger.Error("Failed to cancel subscription", err)
		return err
	}

	return nil
}

// SimulateDelivery selects a randomized batch of eligible products and
// persists it under the subscription. The version bump serializes
// concurrent delivery/return writers on the same subscription.
func (s *subscriptionService) SimulateDelivery(ctx context.Context, id uint) ([]domain.DeliveryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	sub, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Subscription not found for delivery", err)
		return nil, err
	}

	if sub.Status != domain.SubscriptionStatusActive {
		return nil, errors.New("subscription is not active")
	}

	items, err := s.selector.SelectDeliveryItems(ctx, sub.Config())
	if err != nil {
		logger.Error("Failed to select delivery items", err)
		return nil, err
	}

	// the version bump runs before any batch row is written, so a
	// writer that loses the race persists nothing
	if err := s.subRepo.UpdateWithVersion(ctx, &sub); err != nil {
		logger.Error("Failed to bump subscription version", err)
		return nil, err
	}

	// short or empty batches are valid: the catalog may simply not have
	// enough eligible products right now
	if len(items) > 0 {
		for i := range items {
			items[i].SubscriptionID = sub.ID
		}
		if err := s.subRepo.CreateDeliveryItems(ctx, items); err != nil {
			logger.Error("Failed to persist delivery items", err)
			return nil, fmt.Errorf("failed to persist delivery items: %w", err)
		}
	}

	DeliveriesSimulatedTotal.WithLabelValues(sub.PackageType).Inc()

	logger.Info("delivery simulated",
		"subscription_id", sub.ID,
		"items", len(items),
	)

	return items, nil
}

// ProcessReturn marks a delivered item returned, relists it on the
// marketplace as a discounted second-hand product, and credits the
// returning user. The returner earns round(price x 10) points while the
// listing carries round(price x 5) for its future buyer.
func (s *subscriptionService) ProcessReturn(ctx context.Context, subscriptionID, deliveryItemID uint, reason string) (domain.Product, int, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, 0, fmt.Errorf("context error: %w", err)
	}

	sub, err := s.subRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		logger.Error("Subscription not found for return", err)
		return domain.Product{}, 0, err
	}

	item, err := s.subRepo.FindDeliveryItem(ctx, deliveryItemID)
	if err != nil {
		logger.Error("Delivery item not found", err)
		return domain.Product{}, 0, err
	}

	if item.SubscriptionID != sub.ID {
		return domain.Product{}, 0, errors.New("delivery item does not belong to subscription")
	}
	if item.Returned {
		return domain.Product{}, 0, errors.New("item already returned")
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		logger.Error("Returned product not found", err)
		return domain.Product{}, 0, err
	}

	listing, err := marketplace.ConvertReturnToListing(product)
	if err != nil {
		logger.Error("Failed to convert return to listing", err)
		return domain.Product{}, 0, err
	}

	// serialize against concurrent delivery/return writers before any
	// of the return writes land
	if err := s.subRepo.UpdateWithVersion(ctx, &sub); err != nil {
		logger.Error("Failed to bump subscription version", err)
		return domain.Product{}, 0, err
	}

	if err := s.subRepo.MarkReturned(ctx, item.ID, reason, time.Now()); err != nil {
		logger.Error("Failed to mark item returned", err)
		return domain.Product{}, 0, fmt.Errorf("failed to mark item returned: %w", err)
	}

	if err := s.productRepo.Create(ctx, &listing); err != nil {
		logger.Error("Failed to create marketplace listing", err)
		return domain.Product{}, 0, fmt.Errorf("failed to create listing: %w", err)
	}

	points := marketplace.ReturnerRewardPoints(product.Price)
	if err := s.userRepo.CreditRewardPoints(ctx, sub.UserID, points); err != nil {
		logger.Error("Failed to credit returner reward points", err)
		return domain.Product{}, 0, fmt.Errorf("failed to credit reward points: %w", err)
	}

	ReturnsProcessedTotal.Inc()

	if s.notifRepo != nil {
		if user, err := s.userRepo.FindByID(ctx, sub.UserID); err == nil {
			msg := fmt.Sprintf(EmailBodyReturnReward, user.FullName, points)
			if err := s.notifRepo.SendEmail(user.FullName, user.Email, SubjectReturnReward, msg); err != nil {
				logger.Warn("Failed to send return reward email", err)
			}
		}
	}

	logger.Info("return processed",
		"subscription_id", sub.ID,
		"delivery_item_id", item.ID,
		"listing_price", listing.Price,
		"reward_points", points,
	)

	return listing, points, nil
}
