package migration

import (
	"fmt"

	"food-donation-tracker/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"organization", &entities.Organization{}},
		{"donation", &entities.Donation{}},
		{"food item", &entities.FoodItem{}},
		{"donation feedback", &entities.DonationFeedback{}},
		{"waste log", &entities.WasteLog{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}
	return nil
}
