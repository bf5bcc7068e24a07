package analytics

import (
	"context"
	"fmt"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
)

// StatsRepository contract interface
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context, filter domain.ProductFilter) (int64, error)
	CountSubscriptionsByStatus(ctx context.Context, status string) (int64, error)
	SumActiveSubscriptionRevenue(ctx context.Context) (float64, error)
	CountSwipes(ctx context.Context, liked *bool) (int64, error)
	TopSwipedCategories(ctx context.Context, limit int) ([]domain.CategoryCount, error)
}

// Overview is the admin dashboard snapshot.
type Overview struct {
	Users               int64           `json:"users"`
	ActiveProducts      int64           `json:"active_products"`
	SecondHandListings  int64           `json:"second_hand_listings"`
	ActiveSubscriptions int64           `json:"active_subscriptions"`
	MonthlyRevenue      float64         `json:"monthly_revenue"`
	TotalSwipes         int64           `json:"total_swipes"`
	SwipeLikeRate       float64         `json:"swipe_like_rate"`
	TopSwipedCategories []domain.CategoryCount `json:"top_swiped_categories"`
}

type analyticsService struct {
	statsRepo StatsRepository
}

func NewAnalyticsService(statsRepo StatsRepository) *analyticsService {
	return &analyticsService{
		statsRepo: statsRepo,
	}
}

// GetOverview aggregates the marketplace counters into one snapshot.
func (s *analyticsService) GetOverview(ctx context.Context) (Overview, error) {
	if err := ctx.Err(); err != nil {
		return Overview{}, fmt.Errorf("context error: %w", err)
	}

	users, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		logger.Error("Failed to count users", err)
		return Overview{}, err
	}

	firstHand := false
	activeProducts, err := s.statsRepo.CountProducts(ctx, domain.ProductFilter{
		Status:       domain.ProductStatusActive,
		IsSecondHand: &firstHand,
	})
	if err != nil {
		logger.Error("Failed to count products", err)
		return Overview{}, err
	}

	secondHand := true
	listings, err := s.statsRepo.CountProducts(ctx, domain.ProductFilter{
		Status:       domain.ProductStatusActive,
		IsSecondHand: &secondHand,
	})
	if err != nil {
		logger.Error("Failed to count listings", err)
		return Overview{}, err
	}

	activeSubs, err := s.statsRepo.CountSubscriptionsByStatus(ctx, domain.SubscriptionStatusActive)
	if err != nil {
		logger.Error("Failed to count subscriptions", err)
		return Overview{}, err
	}

	revenue, err := s.statsRepo.SumActiveSubscriptionRevenue(ctx)
	if err != nil {
		logger.Error("Failed to sum subscription revenue", err)
		return Overview{}, err
	}

	totalSwipes, err := s.statsRepo.CountSwipes(ctx, nil)
	if err != nil {
		logger.Error("Failed to count swipes", err)
		return Overview{}, err
	}

	liked := true
	likedSwipes, err := s.statsRepo.CountSwipes(ctx, &liked)
	if err != nil {
		logger.Error("Failed to count liked swipes", err)
		return Overview{}, err
	}

	likeRate := 0.0
	if totalSwipes > 0 {
		likeRate = float64(likedSwipes) / float64(totalSwipes)
	}

	topCategories, err := s.statsRepo.TopSwipedCategories(ctx, 5)
	if err != nil {
		logger.Error("Failed to load top swiped categories", err)
		return Overview{}, err
	}

	return Overview{
		Users:               users,
		ActiveProducts:      activeProducts,
		SecondHandListings:  listings,
		ActiveSubscriptions: activeSubs,
		MonthlyRevenue:      revenue,
		TotalSwipes:         totalSwipes,
		SwipeLikeRate:       likeRate,
		TopSwipedCategories: topCategories,
	}, nil
}
