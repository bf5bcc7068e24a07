package delivery

import (
	"context"
	"fmt"
	"math/rand"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
	"time"

	"github.com/google/uuid"
)

// CatalogRepository contract interface
type CatalogRepository interface {
	FindProducts(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error)
	SampleProducts(ctx context.Context, filter domain.ProductFilter, count int) ([]domain.Product, error)
}

// packageCategories maps a package type to its allowed category set.
var packageCategories = map[string][]string{
	domain.PackageFull:        {"Shirts", "Pants", "Accessories"},
	domain.PackageTops:        {"Shirts", "Sweaters"},
	domain.PackageAccessories: {"Accessories"},
}

// tierPriceBand maps a tier to its [min, max) price band. A nil bound is open.
func tierPriceBand(tier string) (minPrice, maxPrice *float64) {
	lo, mid := 30.0, 70.0
	switch tier {
	case domain.TierBudget:
		return nil, &lo
	case domain.TierMid:
		return &lo, &mid
	case domain.TierLuxury:
		return &mid, nil
	default:
		return nil, nil
	}
}

// ItemCount is how many products a single delivery holds.
func ItemCount(packageType string) int {
	if packageType == domain.PackageFull {
		return 5
	}
	return 3
}

type Selector struct {
	catalogRepo CatalogRepository
	rng         *rand.Rand
}

func NewSelector(catalogRepo CatalogRepository) *Selector {
	return &Selector{
		catalogRepo: catalogRepo,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSelectorWithRand injects the random source; tests use a fixed seed.
func NewSelectorWithRand(catalogRepo CatalogRepository, rng *rand.Rand) *Selector {
	return &Selector{
		catalogRepo: catalogRepo,
		rng:         rng,
	}
}

// SelectDeliveryItems picks the products for one simulated delivery.
//
// It queries up to 2N eligible products (category set, price band,
// second-hand flag, active status), tops the pool up with a random sample
// of all active products when the filtered query comes back short, then
// draws N uniformly without replacement, deduplicated by product id. The
// top-up deliberately ignores the original filters and may re-introduce
// products already in the pool; dedup only happens at draw time. Fewer
// than N items is a valid outcome, not an error.
func (s *Selector) SelectDeliveryItems(ctx context.Context, cfg domain.SubscriptionConfig) ([]domain.DeliveryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, ok := packageCategories[cfg.PackageType]
	if !ok {
		return nil, domain.NewConfigError("package_type", cfg.PackageType)
	}

	n := ItemCount(cfg.PackageType)
	minPrice, maxPrice := tierPriceBand(cfg.Tier)

	filter := domain.ProductFilter{
		Categories: categories,
		PriceMin:   minPrice,
		PriceMax:   maxPrice,
		Status:     domain.ProductStatusActive,
	}
	if !cfg.IncludeSecondHand {
		noSecondHand := false
		filter.IsSecondHand = &noSecondHand
	}

	pool, err := s.catalogRepo.FindProducts(ctx, filter, 2*n)
	if err != nil {
		return nil, fmt.Errorf("load delivery candidates: %w", err)
	}

	if len(pool) < n {
		broadened, err := s.catalogRepo.SampleProducts(ctx, domain.ProductFilter{
			Status: domain.ProductStatusActive,
		}, 2*n)
		if err != nil {
			return nil, fmt.Errorf("broaden delivery candidates: %w", err)
		}
		pool = append(pool, broadened...)
	}

	if len(pool) == 0 {
		return []domain.DeliveryItem{}, nil
	}

	picked := s.drawWithoutReplacement(pool, n)

	logger.Debug("delivery_selection",
		"package_type", cfg.PackageType,
		"tier", cfg.Tier,
		"pool_size", len(pool),
		"requested", n,
		"picked", len(picked),
	)

	batchRef := uuid.NewString()
	items := make([]domain.DeliveryItem, 0, len(picked))
	for _, p := range picked {
		items = append(items, domain.DeliveryItem{
			ProductID: p.ID,
			BatchRef:  batchRef,
			Returned:  false,
		})
	}

	return items, nil
}

// drawWithoutReplacement shuffles the pool and walks it, skipping product
// ids already taken, until n items are collected or the pool runs out.
func (s *Selector) drawWithoutReplacement(pool []domain.Product, n int) []domain.Product {
	order := s.rng.Perm(len(pool))

	seen := make(map[uint64]struct{}, n)
	out := make([]domain.Product, 0, n)
	for _, idx := range order {
		p := pool[idx]
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}

	return out
}
