package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusSold     = "sold"
)

// SizeOption is one stocked size of a product.
type SizeOption struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// CREATE TABLE public.products (
//     id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name              TEXT NOT NULL,
//     category          TEXT NOT NULL,
//     description       TEXT,
//     price             NUMERIC NOT NULL,
//     original_price    NUMERIC,
//     condition         TEXT,
//     colors            JSONB,
//     tags              JSONB,
//     sizes             JSONB,
//     images            JSONB,
//     model_url         TEXT,
//     is_second_hand    BOOLEAN DEFAULT FALSE,
//     from_subscription BOOLEAN DEFAULT FALSE,
//     reward_points     BIGINT DEFAULT 0,
//     status            TEXT DEFAULT 'active',
//     sku               TEXT,
//     created_at        TIMESTAMPTZ DEFAULT NOW(),
//     updated_at        TIMESTAMPTZ
// );

type Product struct {
	ID               uint64                          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string                          `gorm:"column:name;type:text;not null" json:"name"`
	Category         string                          `gorm:"column:category;type:text;not null" json:"category"`
	Description      string                          `gorm:"column:description;type:text" json:"description"`
	Price            float64                         `gorm:"column:price;type:numeric" json:"price"`
	OriginalPrice    float64                         `gorm:"column:original_price;type:numeric" json:"original_price"`
	Condition        string                          `gorm:"column:condition;type:text" json:"condition"`
	Colors           datatypes.JSONSlice[string]     `gorm:"column:colors" json:"colors"`
	Tags             datatypes.JSONSlice[string]     `gorm:"column:tags" json:"tags"`
	Sizes            datatypes.JSONSlice[SizeOption] `gorm:"column:sizes" json:"sizes"`
	Images           datatypes.JSONSlice[string]     `gorm:"column:images" json:"images"`
	ModelURL         string                          `gorm:"column:model_url;type:text" json:"model_url"`
	IsSecondHand     bool                            `gorm:"column:is_second_hand;default:false" json:"is_second_hand"`
	FromSubscription bool                            `gorm:"column:from_subscription;default:false" json:"from_subscription"`
	RewardPoints     int                             `gorm:"column:reward_points;default:0" json:"reward_points"`
	Status           string                          `gorm:"column:status;type:text;default:active" json:"status"`
	SKU              string                          `gorm:"column:sku;type:text" json:"sku"`
	CreatedAt        time.Time                       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time                       `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductFilter narrows catalog queries. Nil pointer fields are ignored.
type ProductFilter struct {
	Categories   []string
	PriceMin     *float64
	PriceMax     *float64
	IsSecondHand *bool
	Status       string
	ExcludeIDs   []uint64
}
