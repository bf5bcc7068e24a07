package pricing_test

import (
	"testing"

	"myStyleCrate/business/pricing"
	"myStyleCrate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() domain.SubscriptionConfig {
	return domain.SubscriptionConfig{
		Plan:           domain.PlanMonthly,
		PackageType:    domain.PackageFull,
		Tier:           domain.TierMid,
		FestivePackage: domain.FestiveNone,
	}
}

func TestComputePriceDeterministic(t *testing.T) {
	cfg := validConfig()

	first, err := pricing.ComputePrice(cfg)
	require.NoError(t, err)

	second, err := pricing.ComputePrice(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputePriceMonthlyMidFull(t *testing.T) {
	breakdown, err := pricing.ComputePrice(validConfig())
	require.NoError(t, err)

	assert.InDelta(t, 134.985, breakdown.Base, 1e-9)
	assert.Zero(t, breakdown.FestiveAddon)
	assert.Zero(t, breakdown.Discount)
	assert.InDelta(t, 134.985, breakdown.Total, 1e-9)
}

func TestComputePriceFestiveAddon(t *testing.T) {
	cfg := validConfig()
	cfg.FestivePackage = domain.FestiveChristmas

	breakdown, err := pricing.ComputePrice(cfg)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, breakdown.FestiveAddon, 1e-9)
	assert.InDelta(t, breakdown.Base+20.0, breakdown.Total, 1e-9)
}

func TestComputePriceSecondHandDiscount(t *testing.T) {
	cfg := validConfig()
	cfg.IncludeSecondHand = true

	breakdown, err := pricing.ComputePrice(cfg)
	require.NoError(t, err)

	assert.InDelta(t, breakdown.Base*0.10, breakdown.Discount, 1e-9)
	assert.InDelta(t, breakdown.Base+breakdown.FestiveAddon-breakdown.Discount, breakdown.Total, 1e-9)
}

func TestComputePriceBreakdownIdentity(t *testing.T) {
	plans := []string{domain.PlanMonthly, domain.PlanQuarterly}
	packages := []string{domain.PackageFull, domain.PackageTops, domain.PackageAccessories}
	tiers := []string{domain.TierBudget, domain.TierMid, domain.TierLuxury}
	festives := []string{domain.FestiveNone, domain.FestiveCNY, domain.FestiveChristmas, domain.FestiveSummer}

	for _, plan := range plans {
		for _, pkg := range packages {
			for _, tier := range tiers {
				for _, festive := range festives {
					for _, secondHand := range []bool{false, true} {
						cfg := domain.SubscriptionConfig{
							Plan:              plan,
							PackageType:       pkg,
							Tier:              tier,
							FestivePackage:    festive,
							IncludeSecondHand: secondHand,
						}

						breakdown, err := pricing.ComputePrice(cfg)
						require.NoError(t, err)

						assert.InDelta(t, breakdown.Base+breakdown.FestiveAddon-breakdown.Discount, breakdown.Total, 1e-9)
						assert.GreaterOrEqual(t, breakdown.Total, 0.0)
						assert.Greater(t, breakdown.Base, 0.0)
					}
				}
			}
		}
	}
}

func TestValidateConfigUnknownValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.SubscriptionConfig)
		field  string
	}{
		{"unknown plan", func(c *domain.SubscriptionConfig) { c.Plan = "weekly" }, "plan"},
		{"unknown package", func(c *domain.SubscriptionConfig) { c.PackageType = "bottoms" }, "package_type"},
		{"unknown tier", func(c *domain.SubscriptionConfig) { c.Tier = "platinum" }, "tier"},
		{"unknown festive", func(c *domain.SubscriptionConfig) { c.FestivePackage = "easter" }, "festive_package"},
		{"empty festive", func(c *domain.SubscriptionConfig) { c.FestivePackage = "" }, "festive_package"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			_, err := pricing.ComputePrice(cfg)
			require.Error(t, err)
			assert.True(t, domain.IsConfigError(err))

			var cfgErr *domain.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}
