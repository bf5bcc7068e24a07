package database

import (
	"fmt"
	"myStyleCrate/domain"
	"myStyleCrate/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// migratedModels is the schema registry: every persisted model, declared
// once here and migrated once at process start. Nothing registers schema
// lazily at request time.
var migratedModels = []any{
	&domain.User{},
	&domain.Product{},
	&domain.Category{},
	&domain.Subscription{},
	&domain.DeliveryItem{},
	&domain.SwipeRecord{},
	&domain.LikedItem{},
}

// seedCategories are created on first boot when the table is empty.
var seedCategories = []domain.Category{
	{Name: "Shirts", BodyPart: "top"},
	{Name: "Sweaters", BodyPart: "top"},
	{Name: "Jackets", BodyPart: "top"},
	{Name: "Coats", BodyPart: "top"},
	{Name: "Pants", BodyPart: "bottom"},
	{Name: "Shoes", BodyPart: "shoe"},
	{Name: "Accessories", BodyPart: ""},
}

func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.AutoMigrate(migratedModels...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := seedCategoriesOnce(db); err != nil {
		return nil, err
	}

	return db, nil
}

func seedCategoriesOnce(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&seedCategories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	return nil
}
