package domain

import (
	"time"
)

const (
	PlanMonthly   = "monthly"
	PlanQuarterly = "quarterly"

	PackageFull        = "full"
	PackageTops        = "tops"
	PackageAccessories = "accessories"

	TierBudget = "budget"
	TierMid    = "mid"
	TierLuxury = "luxury"

	FestiveNone      = "none"
	FestiveCNY       = "cny"
	FestiveChristmas = "christmas"
	FestiveSummer    = "summer"

	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

// SubscriptionConfig is the priced shape of a subscription. Every field
// must map to a known price table entry.
type SubscriptionConfig struct {
	Plan              string `json:"plan"`
	PackageType       string `json:"package_type"`
	Tier              string `json:"tier"`
	IncludeSecondHand bool   `json:"include_second_hand"`
	FestivePackage    string `json:"festive_package"`
}

// PriceBreakdown is the derived pricing of a subscription config.
// Total = Base + FestiveAddon - Discount.
type PriceBreakdown struct {
	Base         float64 `json:"base"`
	FestiveAddon float64 `json:"festive_addon"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// Subscription carries its config, the persisted price breakdown, and a
// version column for optimistic locking. Delivery simulation and return
// processing both read-modify-write the same row; the version check keeps
// concurrent writers from silently clobbering each other.
type Subscription struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Plan              string    `gorm:"column:plan;type:text;not null" json:"plan"`
	PackageType       string    `gorm:"column:package_type;type:text;not null" json:"package_type"`
	Tier              string    `gorm:"column:tier;type:text;not null" json:"tier"`
	IncludeSecondHand bool      `gorm:"column:include_second_hand;default:false" json:"include_second_hand"`
	FestivePackage    string    `gorm:"column:festive_package;type:text;default:none" json:"festive_package"`
	Status            string    `gorm:"column:status;type:text;default:active" json:"status"`
	BasePrice         float64   `gorm:"column:base_price;type:numeric" json:"base"`
	FestiveAddon      float64   `gorm:"column:festive_addon;type:numeric" json:"festive_addon"`
	Discount          float64   `gorm:"column:discount;type:numeric" json:"discount"`
	TotalPrice        float64   `gorm:"column:total_price;type:numeric" json:"total"`
	Version           uint      `gorm:"column:version;default:1" json:"version"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// Config extracts the priced fields of a subscription row.
func (s Subscription) Config() SubscriptionConfig {
	return SubscriptionConfig{
		Plan:              s.Plan,
		PackageType:       s.PackageType,
		Tier:              s.Tier,
		IncludeSecondHand: s.IncludeSecondHand,
		FestivePackage:    s.FestivePackage,
	}
}

// DeliveryItem is one product shipped in a simulated delivery. It is
// mutated once, from unreturned to returned.
type DeliveryItem struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	SubscriptionID uint       `gorm:"column:subscription_id;not null;index" json:"subscription_id"`
	ProductID      uint64     `gorm:"column:product_id;not null" json:"product_id"`
	BatchRef       string     `gorm:"column:batch_ref;type:text" json:"batch_ref"`
	Returned       bool       `gorm:"column:returned;default:false" json:"returned"`
	ReturnReason   string     `gorm:"column:return_reason;type:text" json:"return_reason,omitempty"`
	ReturnDate     *time.Time `gorm:"column:return_date" json:"return_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (DeliveryItem) TableName() string {
	return "delivery_items"
}
