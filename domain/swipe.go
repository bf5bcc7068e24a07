package domain

import (
	"time"
)

// SwipeRecord is one binary like/dislike signal on a catalog item.
// Rows are append-only.
type SwipeRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Liked     bool      `gorm:"column:liked;not null" json:"liked"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SwipeRecord) TableName() string {
	return "swipes"
}

// LikedItem is a catalog item the user explicitly saved. Distinct from a
// positive swipe: both signals feed preference aggregation independently.
type LikedItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index:idx_liked_user_product,unique" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null;index:idx_liked_user_product,unique" json:"product_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (LikedItem) TableName() string {
	return "liked_items"
}

// CategoryCount is a per-category liked-swipe tally.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
