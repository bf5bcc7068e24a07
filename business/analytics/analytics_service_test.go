package analytics_test

import (
	"context"
	"testing"

	"myStyleCrate/business/analytics"
	"myStyleCrate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	users       int64
	firstHand   int64
	secondHand  int64
	activeSubs  int64
	revenue     float64
	totalSwipes int64
	likedSwipes int64
	top         []domain.CategoryCount
}

func (f *fakeStatsRepo) CountUsers(_ context.Context) (int64, error) {
	return f.users, nil
}

func (f *fakeStatsRepo) CountProducts(_ context.Context, filter domain.ProductFilter) (int64, error) {
	if filter.IsSecondHand != nil && *filter.IsSecondHand {
		return f.secondHand, nil
	}
	return f.firstHand, nil
}

func (f *fakeStatsRepo) CountSubscriptionsByStatus(_ context.Context, _ string) (int64, error) {
	return f.activeSubs, nil
}

func (f *fakeStatsRepo) SumActiveSubscriptionRevenue(_ context.Context) (float64, error) {
	return f.revenue, nil
}

func (f *fakeStatsRepo) CountSwipes(_ context.Context, liked *bool) (int64, error) {
	if liked != nil && *liked {
		return f.likedSwipes, nil
	}
	return f.totalSwipes, nil
}

func (f *fakeStatsRepo) TopSwipedCategories(_ context.Context, _ int) ([]domain.CategoryCount, error) {
	return f.top, nil
}

func TestGetOverviewAggregatesCounters(t *testing.T) {
	repo := &fakeStatsRepo{
		users:       12,
		firstHand:   40,
		secondHand:  6,
		activeSubs:  5,
		revenue:     674.925,
		totalSwipes: 200,
		likedSwipes: 50,
		top: []domain.CategoryCount{
			{Category: "Shirts", Count: 30},
			{Category: "Pants", Count: 12},
		},
	}
	svc := analytics.NewAnalyticsService(repo)

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), overview.Users)
	assert.Equal(t, int64(40), overview.ActiveProducts)
	assert.Equal(t, int64(6), overview.SecondHandListings)
	assert.Equal(t, int64(5), overview.ActiveSubscriptions)
	assert.InDelta(t, 674.925, overview.MonthlyRevenue, 1e-9)
	assert.Equal(t, int64(200), overview.TotalSwipes)
	assert.InDelta(t, 0.25, overview.SwipeLikeRate, 1e-9)
	require.Len(t, overview.TopSwipedCategories, 2)
	assert.Equal(t, "Shirts", overview.TopSwipedCategories[0].Category)
}

func TestGetOverviewZeroSwipes(t *testing.T) {
	svc := analytics.NewAnalyticsService(&fakeStatsRepo{})

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, overview.SwipeLikeRate)
}
