package pricing

import (
	"myStyleCrate/domain"
)

// Price tables. Unknown keys fail validation instead of pricing as zero.
var packageBasePrice = map[string]float64{
	domain.PackageFull:        89.99,
	domain.PackageTops:        49.99,
	domain.PackageAccessories: 29.99,
}

var tierMultiplier = map[string]float64{
	domain.TierBudget: 1.0,
	domain.TierMid:    1.5,
	domain.TierLuxury: 2.5,
}

var planMultiplier = map[string]float64{
	domain.PlanMonthly:   1.0,
	domain.PlanQuarterly: 2.7,
}

var festiveAddon = map[string]float64{
	domain.FestiveNone:      0,
	domain.FestiveCNY:       15.0,
	domain.FestiveChristmas: 20.0,
	domain.FestiveSummer:    10.0,
}

const secondHandDiscountRate = 0.10

// ValidateConfig checks every enum field against its price table.
func ValidateConfig(cfg domain.SubscriptionConfig) error {
	if _, ok := packageBasePrice[cfg.PackageType]; !ok {
		return domain.NewConfigError("package_type", cfg.PackageType)
	}
	if _, ok := tierMultiplier[cfg.Tier]; !ok {
		return domain.NewConfigError("tier", cfg.Tier)
	}
	if _, ok := planMultiplier[cfg.Plan]; !ok {
		return domain.NewConfigError("plan", cfg.Plan)
	}
	if _, ok := festiveAddon[cfg.FestivePackage]; !ok {
		return domain.NewConfigError("festive_package", cfg.FestivePackage)
	}
	return nil
}

// ComputePrice maps a subscription config to its price breakdown.
// Pure and deterministic: identical input always prices identically, so
// re-pricing on update cannot drift.
func ComputePrice(cfg domain.SubscriptionConfig) (domain.PriceBreakdown, error) {
	if err := ValidateConfig(cfg); err != nil {
		return domain.PriceBreakdown{}, err
	}

	base := packageBasePrice[cfg.PackageType] * tierMultiplier[cfg.Tier] * planMultiplier[cfg.Plan]
	addon := festiveAddon[cfg.FestivePackage]

	discount := 0.0
	if cfg.IncludeSecondHand {
		discount = base * secondHandDiscountRate
	}

	return domain.PriceBreakdown{
		Base:         base,
		FestiveAddon: addon,
		Discount:     discount,
		Total:        base + addon - discount,
	}, nil
}
