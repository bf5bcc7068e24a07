package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SizePreferences is the user's per-body-part fit, stored as a JSONB column.
type SizePreferences struct {
	TopSize    string `json:"top_size"`
	BottomSize string `json:"bottom_size"`
	ShoeSize   string `json:"shoe_size"`
}

type User struct {
	ID           uint                                 `gorm:"primaryKey" json:"id"`
	FullName     string                               `gorm:"column:full_name;not null" json:"full_name"`
	Email        string                               `gorm:"column:email;unique;not null" json:"email"`
	IsVerified   bool                                 `gorm:"column:is_verified;default:false" json:"is_verified"`
	Password     string                               `gorm:"column:password;not null" json:"-"`
	Role         string                               `gorm:"column:role;default:customer" json:"role"`
	RewardPoints int                                  `gorm:"column:reward_points;default:0" json:"reward_points"`
	SizePrefs    datatypes.JSONType[SizePreferences]  `gorm:"column:size_preferences" json:"size_preferences"`
	CreatedAt    time.Time                            `json:"created_at"`
	UpdatedAt    time.Time                            `json:"updated_at"`
	DeletedAt    gorm.DeletedAt                       `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
