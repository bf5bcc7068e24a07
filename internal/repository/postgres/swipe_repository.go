package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStyleCrate/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SwipeRepository struct {
	DB *gorm.DB
}

func NewSwipeRepository(db *gorm.DB) *SwipeRepository {
	return &SwipeRepository{DB: db}
}

func (r *SwipeRepository) CreateSwipe(ctx context.Context, swipe *domain.SwipeRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(swipe).Error; err != nil {
		return fmt.Errorf("failed to create swipe: %w", err)
	}

	return nil
}

// FindSwipes returns the full history, oldest first. Ordering matters:
// preference aggregation ties break by first-encountered label.
func (r *SwipeRepository) FindSwipes(ctx context.Context, userID uint) ([]domain.SwipeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var swipes []domain.SwipeRecord
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&swipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find swipes: %w", err)
	}

	return swipes, nil
}

func (r *SwipeRepository) CreateLike(ctx context.Context, like *domain.LikedItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	// liking twice is a no-op, not an error
	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		},
	).Create(like).Error; err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}

	return nil
}

func (r *SwipeRepository) DeleteLike(ctx context.Context, userID uint, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.LikedItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete like: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("liked item not found")
	}

	return nil
}

// FindLikedProducts resolves liked items to their products, in like order.
func (r *SwipeRepository) FindLikedProducts(ctx context.Context, userID uint) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Joins("JOIN liked_items ON liked_items.product_id = products.id").
		Where("liked_items.user_id = ?", userID).
		Order("liked_items.id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find liked products: %w", err)
	}

	return products, nil
}
