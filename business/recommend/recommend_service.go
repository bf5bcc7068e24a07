package recommend

import (
	"context"
	"fmt"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/logger"
)

const defaultLimit = 5

// candidatePoolFactor controls how many candidates are fetched per
// requested recommendation.
const candidatePoolFactor = 4

// ---- Repository interfaces ----

type ProductRepository interface {
	FindProducts(ctx context.Context, filter domain.ProductFilter, limit int) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type ActivityRepository interface {
	FindLikedProducts(ctx context.Context, userID uint) ([]domain.Product, error)
	FindSwipes(ctx context.Context, userID uint) ([]domain.SwipeRecord, error)
}

// RecommendationCache is the per-user short-TTL cache in front of scoring.
type RecommendationCache interface {
	Get(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, bool, error)
	Set(ctx context.Context, userID uint, limit int, recs []domain.Recommendation) error
}

// ---- Usecase / Service ----

type RecommendService struct {
	productRepo  ProductRepository
	userRepo     UserRepository
	activityRepo ActivityRepository
	cache        RecommendationCache
}

func NewRecommendService(
	productRepo ProductRepository,
	userRepo UserRepository,
	activityRepo ActivityRepository,
	cache RecommendationCache,
) *RecommendService {
	return &RecommendService{
		productRepo:  productRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		cache:        cache,
	}
}

// Preferences aggregates the user's liked items and swipe history into
// their top category/color/tag labels.
func (s *RecommendService) Preferences(ctx context.Context, userID uint) (domain.TopPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.TopPreferences{}, fmt.Errorf("context error: %w", err)
	}

	liked, swipes, swipedProducts, err := s.loadActivity(ctx, userID)
	if err != nil {
		return domain.TopPreferences{}, err
	}

	categories, colors, tags := AggregatePreferences(liked, swipes, swipedProducts)
	return TopPreferences(categories, colors, tags), nil
}

// Recommend returns up to limit scored product recommendations for a
// user. Candidates are active, first-hand products the user has not
// already swiped or liked. A thin history is fine: the scorer degrades
// to low activity-based scores instead of failing.
func (s *RecommendService) Recommend(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, userID, limit); err == nil && ok {
			RecommendationCacheHitsTotal.Inc()
			return cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	liked, swipes, swipedProducts, err := s.loadActivity(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories, colors, tags := AggregatePreferences(liked, swipes, swipedProducts)
	prefs := TopPreferences(categories, colors, tags)

	// everything already seen is excluded from the candidate pool
	seen := make(map[uint64]struct{}, len(liked)+len(swipes))
	for _, p := range liked {
		seen[p.ID] = struct{}{}
	}
	for _, sw := range swipes {
		seen[sw.ProductID] = struct{}{}
	}
	excludeIDs := make([]uint64, 0, len(seen))
	for id := range seen {
		excludeIDs = append(excludeIDs, id)
	}

	firstHand := false
	candidates, err := s.productRepo.FindProducts(ctx, domain.ProductFilter{
		Status:       domain.ProductStatusActive,
		IsSecondHand: &firstHand,
		ExcludeIDs:   excludeIDs,
	}, limit*candidatePoolFactor)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if len(candidates) == 0 {
		return []domain.Recommendation{}, nil
	}

	recs := ScoreCandidates(prefs, user.SizePrefs.Data(), candidates, limit)

	logger.Debug("recommendations_scored",
		"user_id", userID,
		"candidates", len(candidates),
		"returned", len(recs),
	)

	for _, r := range recs {
		RecommendationsServedTotal.WithLabelValues(r.Reason).Inc()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, limit, recs); err != nil {
			logger.Warn("Failed to cache recommendations", err)
		}
	}

	return recs, nil
}

// loadActivity fetches liked products, the full swipe history, and the
// product metadata behind positively swiped items.
func (s *RecommendService) loadActivity(ctx context.Context, userID uint) ([]domain.Product, []domain.SwipeRecord, map[uint64]domain.Product, error) {
	liked, err := s.activityRepo.FindLikedProducts(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load liked items: %w", err)
	}

	swipes, err := s.activityRepo.FindSwipes(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load swipes: %w", err)
	}

	ids := make([]uint64, 0, len(swipes))
	idSeen := make(map[uint64]struct{}, len(swipes))
	for _, sw := range swipes {
		if !sw.Liked {
			continue
		}
		if _, ok := idSeen[sw.ProductID]; ok {
			continue
		}
		idSeen[sw.ProductID] = struct{}{}
		ids = append(ids, sw.ProductID)
	}

	swipedProducts := make(map[uint64]domain.Product, len(ids))
	if len(ids) > 0 {
		products, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load swiped products: %w", err)
		}
		for _, p := range products {
			swipedProducts[p.ID] = p
		}
	}

	return liked, swipes, swipedProducts, nil
}
