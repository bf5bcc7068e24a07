package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStyleCrate/domain"
	"time"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uint) (domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return domain.Subscription{}, fmt.Errorf("context error: %w", err)
	}

	var sub domain.Subscription
	err := r.DB.WithContext(ctx).First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Subscription{}, errors.New("subscription not found")
		}
		return domain.Subscription{}, fmt.Errorf("failed to find subscription: %w", err)
	}

	return sub, nil
}

func (r *SubscriptionRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var subs []domain.Subscription
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to find subscriptions: %w", err)
	}

	return subs, nil
}

// UpdateWithVersion writes the row only if the version column still holds
// the value the caller read. Zero rows affected means another writer got
// there first.
func (r *SubscriptionRepository) UpdateWithVersion(ctx context.Context, sub *domain.Subscription) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	currentVersion := sub.Version
	updateData := map[string]interface{}{
		"plan":                sub.Plan,
		"package_type":        sub.PackageType,
		"tier":                sub.Tier,
		"include_second_hand": sub.IncludeSecondHand,
		"festive_package":     sub.FestivePackage,
		"status":              sub.Status,
		"base_price":          sub.BasePrice,
		"festive_addon":       sub.FestiveAddon,
		"discount":            sub.Discount,
		"total_price":         sub.TotalPrice,
		"version":             currentVersion + 1,
		"updated_at":          time.Now(),
	}

	result := r.DB.WithContext(ctx).Model(&domain.Subscription{}).
		Where("id = ? AND version = ?", sub.ID, currentVersion).
		Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}

	sub.Version = currentVersion + 1
	return nil
}

// ---- Delivery items ----

func (r *SubscriptionRepository) CreateDeliveryItems(ctx context.Context, items []domain.DeliveryItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create delivery items: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) FindDeliveryItems(ctx context.Context, subscriptionID uint) ([]domain.DeliveryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.DeliveryItem
	err := r.DB.WithContext(ctx).Where("subscription_id = ?", subscriptionID).Order("id").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find delivery items: %w", err)
	}

	return items, nil
}

func (r *SubscriptionRepository) FindDeliveryItem(ctx context.Context, id uint) (domain.DeliveryItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.DeliveryItem{}, fmt.Errorf("context error: %w", err)
	}

	var item domain.DeliveryItem
	err := r.DB.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DeliveryItem{}, errors.New("delivery item not found")
		}
		return domain.DeliveryItem{}, fmt.Errorf("failed to find delivery item: %w", err)
	}

	return item, nil
}

// MarkReturned flips an unreturned delivery item; returning twice fails.
func (r *SubscriptionRepository) MarkReturned(ctx context.Context, id uint, reason string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.DeliveryItem{}).
		Where("id = ? AND returned = ?", id, false).
		Updates(map[string]interface{}{
			"returned":      true,
			"return_reason": reason,
			"return_date":   at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark item returned: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("delivery item not found or already returned")
	}

	return nil
}
