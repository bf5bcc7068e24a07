package postgres

import (
	"context"
	"fmt"
	"myStyleCrate/domain"

	"gorm.io/gorm"
)

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *StatsRepository) CountProducts(ctx context.Context, filter domain.ProductFilter) (int64, error) {
	var count int64
	q := applyFilter(r.DB.WithContext(ctx).Model(&domain.Product{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *StatsRepository) CountSubscriptionsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Subscription{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *StatsRepository) SumActiveSubscriptionRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Model(&domain.Subscription{}).
		Where("status = ?", domain.SubscriptionStatusActive).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum subscription revenue: %w", err)
	}
	return total, nil
}

func (r *StatsRepository) CountSwipes(ctx context.Context, liked *bool) (int64, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&domain.SwipeRecord{})
	if liked != nil {
		q = q.Where("liked = ?", *liked)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count swipes: %w", err)
	}
	return count, nil
}

func (r *StatsRepository) TopSwipedCategories(ctx context.Context, limit int) ([]domain.CategoryCount, error) {
	var rows []domain.CategoryCount
	err := r.DB.WithContext(ctx).Model(&domain.SwipeRecord{}).
		Select("products.category AS category, COUNT(*) AS count").
		Joins("JOIN products ON products.id = swipes.product_id").
		Where("swipes.liked = ?", true).
		Group("products.category").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top swiped categories: %w", err)
	}
	return rows, nil
}
