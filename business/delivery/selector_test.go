package delivery_test

import (
	"context"
	"math/rand"
	"testing"

	"myStyleCrate/business/delivery"
	"myStyleCrate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	filtered []domain.Product
	sampled  []domain.Product

	filterSeen   domain.ProductFilter
	sampleCalled bool
}

func (f *fakeCatalog) FindProducts(_ context.Context, filter domain.ProductFilter, _ int) ([]domain.Product, error) {
	f.filterSeen = filter
	return f.filtered, nil
}

func (f *fakeCatalog) SampleProducts(_ context.Context, _ domain.ProductFilter, _ int) ([]domain.Product, error) {
	f.sampleCalled = true
	return f.sampled, nil
}

func products(ids ...uint64) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Product{ID: id, Name: "item", Category: "Shirts", Status: domain.ProductStatusActive})
	}
	return out
}

func fixedSelector(catalog *fakeCatalog) *delivery.Selector {
	return delivery.NewSelectorWithRand(catalog, rand.New(rand.NewSource(42)))
}

func TestSelectDeliveryItemsNoDuplicates(t *testing.T) {
	// pool contains every id twice; the draw must dedup
	catalog := &fakeCatalog{
		filtered: products(1, 2, 3, 4, 5, 1, 2, 3, 4, 5),
	}
	selector := fixedSelector(catalog)

	items, err := selector.SelectDeliveryItems(context.Background(), domain.SubscriptionConfig{
		PackageType: domain.PackageFull,
		Tier:        domain.TierMid,
	})
	require.NoError(t, err)
	require.Len(t, items, 5)

	seen := make(map[uint64]struct{})
	for _, item := range items {
		_, dup := seen[item.ProductID]
		assert.False(t, dup, "product %d picked twice", item.ProductID)
		seen[item.ProductID] = struct{}{}
	}
}

func TestSelectDeliveryItemsSharedBatchRef(t *testing.T) {
	catalog := &fakeCatalog{filtered: products(1, 2, 3, 4, 5, 6)}
	selector := fixedSelector(catalog)

	items, err := selector.SelectDeliveryItems(context.Background(), domain.SubscriptionConfig{
		PackageType: domain.PackageTops,
		Tier:        domain.TierBudget,
	})
	require.NoError(t, err)
	require.NotEmpty(t, items)

	ref := items[0].BatchRef
	assert.NotEmpty(t, ref)
	for _, item := range items {
		assert.Equal(t, ref, item.BatchRef)
		assert.False(t, item.Returned)
	}
}

func TestSelectDeliveryItemsShortPoolBroadens(t *testing.T) {
	// only 2 eligible products but the sample adds a third, plus repeats
	catalog := &fakeCatalog{
		filtered: products(1, 2),
		sampled:  products(1, 2, 3),
	}
	selector := fixedSelector(catalog)

	items, err := selector.SelectDeliveryItems(context.Background(), domain.SubscriptionConfig{
		PackageType: domain.PackageTops,
		Tier:        domain.TierBudget,
	})
	require.NoError(t, err)
	assert.True(t, catalog.sampleCalled)
	require.Len(t, items, 3)

	seen := make(map[uint64]struct{})
	for _, item := range items {
		seen[item.ProductID] = struct{}{}
	}
	assert.Len(t, seen, 3)
}

func TestSelectDeliveryItemsFullPoolSkipsBroadening(t *testing.T) {
	catalog := &fakeCatalog{filtered: products(1, 2, 3, 4, 5, 6)}
	selector := fixedSelector(catalog)

	items, err := selector.SelectDeliveryItems(context.Background(), domain.SubscriptionConfig{
		PackageType: domain.PackageTops,
		Tier:        domain.TierLuxury,
	})
	require.NoError(t, err)
	assert.False(t, catalog.sampleCalled)
	assert.Len(t, items, 3)
}

func TestSelectDeliveryItemsScarcityIsNotAnError(t *testing.T) {
	// 2 unique products for a 3-item package, nothing to broaden with
	catalog := &fakeCatalog{
		filtered: products(7, 8),
		sampled:  nil,
	}
	selector := fixedSelector(catalog)

	items, err := selector.SelectDeliveryItems(context.Background(), domain.SubscriptionConfig{
		PackageType: domain.PackageTops,
		Tier:        domain.TierBudget,
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSelectDeliveryItemsEmptyCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	selector := fixedSelector(catalog)

	items, err := selector.SelectDeliveryItems(context.Background(), domain.SubscriptionConfig{
		PackageType: domain.PackageAccessories,
		Tier:        domain.TierBudget,
	})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.True(t, catalog.sampleCalled)
}

func TestSelectDeliveryItemsUnknownPackage(t *testing.T) {
	catalog := &fakeCatalog{}
	selector := fixedSelector(catalog)

	_, err := selector.SelectDeliveryItems(context.Background(), domain.SubscriptionConfig{
		PackageType: "mystery",
		Tier:        domain.TierBudget,
	})
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))
}

func TestSelectDeliveryItemsFilterShape(t *testing.T) {
	catalog := &fakeCatalog{filtered: products(1, 2, 3, 4, 5, 6)}
	selector := fixedSelector(catalog)

	_, err := selector.SelectDeliveryItems(context.Background(), domain.SubscriptionConfig{
		PackageType: domain.PackageTops,
		Tier:        domain.TierMid,
	})
	require.NoError(t, err)

	filter := catalog.filterSeen
	assert.Equal(t, []string{"Shirts", "Sweaters"}, filter.Categories)
	assert.Equal(t, domain.ProductStatusActive, filter.Status)
	require.NotNil(t, filter.PriceMin)
	require.NotNil(t, filter.PriceMax)
	assert.InDelta(t, 30.0, *filter.PriceMin, 1e-9)
	assert.InDelta(t, 70.0, *filter.PriceMax, 1e-9)
	require.NotNil(t, filter.IsSecondHand)
	assert.False(t, *filter.IsSecondHand)
}

func TestItemCount(t *testing.T) {
	assert.Equal(t, 5, delivery.ItemCount(domain.PackageFull))
	assert.Equal(t, 3, delivery.ItemCount(domain.PackageTops))
	assert.Equal(t, 3, delivery.ItemCount(domain.PackageAccessories))
}
