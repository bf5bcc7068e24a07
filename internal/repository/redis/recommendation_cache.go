package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"myStyleCrate/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// recommendationTTL keeps cached recommendations short-lived: a swipe
// should change what the user sees within a minute.
const recommendationTTL = time.Minute

type RecommendationCache struct {
	client *redis.Client
}

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{
		client: client,
	}
}

func cacheKey(userID uint, limit int) string {
	return fmt.Sprintf("reco:user:%d:n:%d", userID, limit)
}

func (c *RecommendationCache) Get(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(userID, limit)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached recommendations: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return recs, true, nil
}

func (c *RecommendationCache) Set(ctx context.Context, userID uint, limit int, recs []domain.Recommendation) error {
	raw, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(userID, limit), raw, recommendationTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}

	return nil
}
