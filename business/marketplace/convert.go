package marketplace

import (
	"math"
	"myStyleCrate/domain"

	"github.com/google/uuid"
)

const (
	// resale keeps 60% of the original price (40% discount)
	resalePriceRate  = 0.60
	listingCondition = "Very Good"

	// rewardPoints on the new listing accrue to its future buyer;
	// the returning user is credited at a different, higher rate.
	// The 10x/5x asymmetry is deliberate and must not be unified.
	listingRewardRate  = 5
	returnerRewardRate = 10
)

// ConvertReturnToListing derives a second-hand marketplace listing from a
// returned subscription item's product. Images, colors, tags and model
// URL carry over verbatim; sizes collapse to the first original size with
// quantity 1. A product with no recorded sizes cannot be listed.
func ConvertReturnToListing(original domain.Product) (domain.Product, error) {
	if len(original.Sizes) == 0 {
		return domain.Product{}, domain.NewConfigError("sizes", "empty")
	}

	listing := domain.Product{
		Name:             original.Name,
		Category:         original.Category,
		Description:      original.Description,
		Price:            original.Price * resalePriceRate,
		OriginalPrice:    original.Price,
		Condition:        listingCondition,
		Colors:           original.Colors,
		Tags:             original.Tags,
		Images:           original.Images,
		ModelURL:         original.ModelURL,
		IsSecondHand:     true,
		FromSubscription: true,
		RewardPoints:     int(math.Round(original.Price * listingRewardRate)),
		Status:           domain.ProductStatusActive,
		SKU:              uuid.NewString(),
		Sizes: []domain.SizeOption{
			{Label: original.Sizes[0].Label, Quantity: 1},
		},
	}

	return listing, nil
}

// ReturnerRewardPoints is the credit the returning user receives.
func ReturnerRewardPoints(originalPrice float64) int {
	return int(math.Round(originalPrice * returnerRewardRate))
}
