package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"myStyleCrate/business/subscription"
	"myStyleCrate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeSubRepo struct {
	subs          map[uint]domain.Subscription
	items         map[uint]domain.DeliveryItem
	created       []domain.DeliveryItem
	versionErr    error
	versionsBumps int
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{
		subs:  make(map[uint]domain.Subscription),
		items: make(map[uint]domain.DeliveryItem),
	}
}

func (f *fakeSubRepo) Create(_ context.Context, sub *domain.Subscription) error {
	sub.ID = uint(len(f.subs) + 1)
	f.subs[sub.ID] = *sub
	return nil
}

func (f *fakeSubRepo) FindByID(_ context.Context, id uint) (domain.Subscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return domain.Subscription{}, errors.New("subscription not found")
	}
	return sub, nil
}

func (f *fakeSubRepo) FindByUser(_ context.Context, userID uint) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, sub := range f.subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) UpdateWithVersion(_ context.Context, sub *domain.Subscription) error {
	if f.versionErr != nil {
		return f.versionErr
	}
	f.versionsBumps++
	sub.Version++
	f.subs[sub.ID] = *sub
	return nil
}

func (f *fakeSubRepo) CreateDeliveryItems(_ context.Context, items []domain.DeliveryItem) error {
	for i := range items {
		items[i].ID = uint(len(f.items) + 1)
		f.items[items[i].ID] = items[i]
	}
	f.created = append(f.created, items...)
	return nil
}

func (f *fakeSubRepo) FindDeliveryItems(_ context.Context, subscriptionID uint) ([]domain.DeliveryItem, error) {
	var out []domain.DeliveryItem
	for _, item := range f.items {
		if item.SubscriptionID == subscriptionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) FindDeliveryItem(_ context.Context, id uint) (domain.DeliveryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.DeliveryItem{}, errors.New("delivery item not found")
	}
	return item, nil
}

func (f *fakeSubRepo) MarkReturned(_ context.Context, id uint, reason string, at time.Time) error {
	item, ok := f.items[id]
	if !ok {
		return errors.New("delivery item not found")
	}
	item.Returned = true
	item.ReturnReason = reason
	item.ReturnDate = &at
	f.items[id] = item
	return nil
}

type fakeProductRepo struct {
	products map[uint64]domain.Product
	created  []domain.Product
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	product.ID = uint64(len(f.products) + 100)
	f.created = append(f.created, *product)
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

type fakeUserRepo struct {
	credited map[uint]int
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	return domain.User{ID: id, FullName: "Jamie", Email: "jamie@example.com"}, nil
}

func (f *fakeUserRepo) CreditRewardPoints(_ context.Context, userID uint, points int) error {
	if f.credited == nil {
		f.credited = make(map[uint]int)
	}
	f.credited[userID] += points
	return nil
}

type fakeSelector struct {
	items []domain.DeliveryItem
	err   error
}

func (f *fakeSelector) SelectDeliveryItems(_ context.Context, _ domain.SubscriptionConfig) ([]domain.DeliveryItem, error) {
	return f.items, f.err
}

func validConfig() domain.SubscriptionConfig {
	return domain.SubscriptionConfig{
		Plan:           domain.PlanMonthly,
		PackageType:    domain.PackageTops,
		Tier:           domain.TierBudget,
		FestivePackage: domain.FestiveNone,
	}
}

func newService(subRepo *fakeSubRepo, productRepo *fakeProductRepo, userRepo *fakeUserRepo, selector *fakeSelector) interface {
	CreateSubscription(ctx context.Context, userID uint, cfg domain.SubscriptionConfig) (domain.Subscription, error)
	UpdateConfig(ctx context.Context, id uint, cfg domain.SubscriptionConfig) (domain.Subscription, error)
	CancelSubscription(ctx context.Context, id uint) error
	SimulateDelivery(ctx context.Context, id uint) ([]domain.DeliveryItem, error)
	ProcessReturn(ctx context.Context, subscriptionID, deliveryItemID uint, reason string) (domain.Product, int, error)
} {
	return subscription.NewSubscriptionService(subRepo, productRepo, userRepo, selector, nil)
}

func TestCreateSubscriptionPersistsBreakdown(t *testing.T) {
	subRepo := newFakeSubRepo()
	svc := newService(subRepo, &fakeProductRepo{}, &fakeUserRepo{}, &fakeSelector{})

	sub, err := svc.CreateSubscription(context.Background(), 42, validConfig())
	require.NoError(t, err)

	assert.Equal(t, uint(42), sub.UserID)
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, uint(1), sub.Version)
	assert.InDelta(t, 49.99, sub.BasePrice, 1e-9)
	assert.InDelta(t, sub.BasePrice+sub.FestiveAddon-sub.Discount, sub.TotalPrice, 1e-9)
}

func TestCreateSubscriptionRejectsUnknownConfig(t *testing.T) {
	svc := newService(newFakeSubRepo(), &fakeProductRepo{}, &fakeUserRepo{}, &fakeSelector{})

	cfg := validConfig()
	cfg.Tier = "diamond"

	_, err := svc.CreateSubscription(context.Background(), 42, cfg)
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))
}

func TestUpdateConfigReprices(t *testing.T) {
	subRepo := newFakeSubRepo()
	svc := newService(subRepo, &fakeProductRepo{}, &fakeUserRepo{}, &fakeSelector{})

	sub, err := svc.CreateSubscription(context.Background(), 1, validConfig())
	require.NoError(t, err)

	cfg := validConfig()
	cfg.Tier = domain.TierLuxury

	updated, err := svc.UpdateConfig(context.Background(), sub.ID, cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.TierLuxury, updated.Tier)
	assert.InDelta(t, 49.99*2.5, updated.BasePrice, 1e-9)
	assert.Equal(t, sub.Version+1, updated.Version)
}

func TestUpdateConfigVersionConflict(t *testing.T) {
	subRepo := newFakeSubRepo()
	svc := newService(subRepo, &fakeProductRepo{}, &fakeUserRepo{}, &fakeSelector{})

	sub, err := svc.CreateSubscription(context.Background(), 1, validConfig())
	require.NoError(t, err)

	subRepo.versionErr = domain.ErrVersionConflict

	_, err = svc.UpdateConfig(context.Background(), sub.ID, validConfig())
	require.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestCancelSubscriptionTwice(t *testing.T) {
	subRepo := newFakeSubRepo()
	svc := newService(subRepo, &fakeProductRepo{}, &fakeUserRepo{}, &fakeSelector{})

	sub, err := svc.CreateSubscription(context.Background(), 1, validConfig())
	require.NoError(t, err)

	require.NoError(t, svc.CancelSubscription(context.Background(), sub.ID))

	err = svc.CancelSubscription(context.Background(), sub.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already cancelled")
}

func TestSimulateDeliveryAttachesSubscription(t *testing.T) {
	subRepo := newFakeSubRepo()
	selector := &fakeSelector{items: []domain.DeliveryItem{
		{ProductID: 10, BatchRef: "batch-1"},
		{ProductID: 11, BatchRef: "batch-1"},
	}}
	svc := newService(subRepo, &fakeProductRepo{}, &fakeUserRepo{}, selector)

	sub, err := svc.CreateSubscription(context.Background(), 1, validConfig())
	require.NoError(t, err)

	items, err := svc.SimulateDelivery(context.Background(), sub.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	for _, item := range items {
		assert.Equal(t, sub.ID, item.SubscriptionID)
	}
	assert.Len(t, subRepo.created, 2)

	stored, err := subRepo.FindByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.Version+1, stored.Version)
}

func TestSimulateDeliveryInactiveSubscription(t *testing.T) {
	subRepo := newFakeSubRepo()
	svc := newService(subRepo, &fakeProductRepo{}, &fakeUserRepo{}, &fakeSelector{})

	sub, err := svc.CreateSubscription(context.Background(), 1, validConfig())
	require.NoError(t, err)
	require.NoError(t, svc.CancelSubscription(context.Background(), sub.ID))

	_, err = svc.SimulateDelivery(context.Background(), sub.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")
}

func TestSimulateDeliveryEmptyBatch(t *testing.T) {
	subRepo := newFakeSubRepo()
	svc := newService(subRepo, &fakeProductRepo{}, &fakeUserRepo{}, &fakeSelector{items: []domain.DeliveryItem{}})

	sub, err := svc.CreateSubscription(context.Background(), 1, validConfig())
	require.NoError(t, err)

	items, err := svc.SimulateDelivery(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, subRepo.created)
}

func TestSimulateDeliveryVersionConflictWritesNothing(t *testing.T) {
	subRepo := newFakeSubRepo()
	selector := &fakeSelector{items: []domain.DeliveryItem{
		{ProductID: 10, BatchRef: "batch-1"},
	}}
	svc := newService(subRepo, &fakeProductRepo{}, &fakeUserRepo{}, selector)

	sub, err := svc.CreateSubscription(context.Background(), 1, validConfig())
	require.NoError(t, err)

	subRepo.versionErr = domain.ErrVersionConflict

	_, err = svc.SimulateDelivery(context.Background(), sub.ID)
	require.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Empty(t, subRepo.created)
}

func TestProcessReturnListsAndCredits(t *testing.T) {
	subRepo := newFakeSubRepo()
	productRepo := &fakeProductRepo{products: map[uint64]domain.Product{
		10: {
			ID:       10,
			Name:     "Linen Shirt",
			Category: "Shirts",
			Price:    50.0,
			Sizes: datatypes.NewJSONSlice([]domain.SizeOption{
				{Label: "M", Quantity: 2},
			}),
			Status: domain.ProductStatusActive,
		},
	}}
	userRepo := &fakeUserRepo{}
	selector := &fakeSelector{items: []domain.DeliveryItem{{ProductID: 10, BatchRef: "batch-1"}}}
	svc := newService(subRepo, productRepo, userRepo, selector)

	sub, err := svc.CreateSubscription(context.Background(), 7, validConfig())
	require.NoError(t, err)

	items, err := svc.SimulateDelivery(context.Background(), sub.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	listing, points, err := svc.ProcessReturn(context.Background(), sub.ID, items[0].ID, "too small")
	require.NoError(t, err)

	assert.Equal(t, 500, points)
	assert.Equal(t, 500, userRepo.credited[7])
	assert.InDelta(t, 30.0, listing.Price, 1e-9)
	assert.True(t, listing.IsSecondHand)
	assert.True(t, listing.FromSubscription)
	require.Len(t, productRepo.created, 1)

	returned, err := subRepo.FindDeliveryItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.True(t, returned.Returned)
	assert.Equal(t, "too small", returned.ReturnReason)
	require.NotNil(t, returned.ReturnDate)
}

func TestProcessReturnVersionConflictWritesNothing(t *testing.T) {
	subRepo := newFakeSubRepo()
	productRepo := &fakeProductRepo{products: map[uint64]domain.Product{
		10: {
			ID:    10,
			Price: 50.0,
			Sizes: datatypes.NewJSONSlice([]domain.SizeOption{{Label: "M", Quantity: 2}}),
		},
	}}
	userRepo := &fakeUserRepo{}
	selector := &fakeSelector{items: []domain.DeliveryItem{{ProductID: 10, BatchRef: "batch-1"}}}
	svc := newService(subRepo, productRepo, userRepo, selector)

	sub, err := svc.CreateSubscription(context.Background(), 7, validConfig())
	require.NoError(t, err)

	items, err := svc.SimulateDelivery(context.Background(), sub.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	subRepo.versionErr = domain.ErrVersionConflict

	_, _, err = svc.ProcessReturn(context.Background(), sub.ID, items[0].ID, "too small")
	require.ErrorIs(t, err, domain.ErrVersionConflict)

	item, err := subRepo.FindDeliveryItem(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.False(t, item.Returned)
	assert.Empty(t, productRepo.created)
	assert.Empty(t, userRepo.credited)
}

func TestProcessReturnRejectsDoubleReturn(t *testing.T) {
	subRepo := newFakeSubRepo()
	productRepo := &fakeProductRepo{products: map[uint64]domain.Product{
		10: {
			ID:    10,
			Price: 20.0,
			Sizes: datatypes.NewJSONSlice([]domain.SizeOption{{Label: "S", Quantity: 1}}),
		},
	}}
	selector := &fakeSelector{items: []domain.DeliveryItem{{ProductID: 10, BatchRef: "batch-1"}}}
	svc := newService(subRepo, productRepo, &fakeUserRepo{}, selector)

	sub, err := svc.CreateSubscription(context.Background(), 7, validConfig())
	require.NoError(t, err)

	items, err := svc.SimulateDelivery(context.Background(), sub.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, _, err = svc.ProcessReturn(context.Background(), sub.ID, items[0].ID, "scratchy")
	require.NoError(t, err)

	_, _, err = svc.ProcessReturn(context.Background(), sub.ID, items[0].ID, "scratchy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already returned")
}

func TestProcessReturnWrongSubscription(t *testing.T) {
	subRepo := newFakeSubRepo()
	productRepo := &fakeProductRepo{products: map[uint64]domain.Product{
		10: {
			ID:    10,
			Price: 20.0,
			Sizes: datatypes.NewJSONSlice([]domain.SizeOption{{Label: "S", Quantity: 1}}),
		},
	}}
	selector := &fakeSelector{items: []domain.DeliveryItem{{ProductID: 10, BatchRef: "batch-1"}}}
	svc := newService(subRepo, productRepo, &fakeUserRepo{}, selector)

	first, err := svc.CreateSubscription(context.Background(), 7, validConfig())
	require.NoError(t, err)
	second, err := svc.CreateSubscription(context.Background(), 8, validConfig())
	require.NoError(t, err)

	items, err := svc.SimulateDelivery(context.Background(), first.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, _, err = svc.ProcessReturn(context.Background(), second.ID, items[0].ID, "wrong fit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}
