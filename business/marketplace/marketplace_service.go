package marketplace

import (
	"context"
	"errors"
	"fmt"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindProducts(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

// UserRepository contract interface
type UserRepository interface {
	CreditRewardPoints(ctx context.Context, userID uint, points int) error
}

type marketplaceService struct {
	productRepo ProductRepository
	userRepo    UserRepository
}

func NewMarketplaceService(productRepo ProductRepository, userRepo UserRepository) *marketplaceService {
	return &marketplaceService{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// GetListings returns active second-hand listings.
func (s *marketplaceService) GetListings(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	secondHand := true
	listings, err := s.productRepo.FindProducts(ctx, domain.ProductFilter{
		IsSecondHand: &secondHand,
		Status:       domain.ProductStatusActive,
	}, limit)
	if err != nil {
		logger.Error("Failed to load marketplace listings", err)
		return nil, err
	}

	return listings, nil
}

// Purchase marks a second-hand listing sold and credits its reward points
// to the buyer.
func (s *marketplaceService) Purchase(ctx context.Context, userID uint, listingID uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	listing, err := s.productRepo.FindByID(ctx, listingID)
	if err != nil {
		logger.Error("Listing not found", err)
		return domain.Product{}, err
	}

	if !listing.IsSecondHand {
		return domain.Product{}, errors.New("product is not a marketplace listing")
	}
	if listing.Status != domain.ProductStatusActive {
		return domain.Product{}, errors.New("listing is no longer available")
	}

	if err := s.productRepo.UpdateStatus(ctx, listingID, domain.ProductStatusSold); err != nil {
		logger.Error("Failed to mark listing sold", err)
		return domain.Product{}, fmt.Errorf("failed to mark listing sold: %w", err)
	}

	if listing.RewardPoints > 0 {
		if err := s.userRepo.CreditRewardPoints(ctx, userID, listing.RewardPoints); err != nil {
			logger.Error("Failed to credit buyer reward points", err)
			return domain.Product{}, fmt.Errorf("failed to credit reward points: %w", err)
		}
	}

	listing.Status = domain.ProductStatusSold

	logger.Info("marketplace purchase",
		"user_id", userID,
		"listing_id", listingID,
		"reward_points", listing.RewardPoints,
	)

	return listing, nil
}
