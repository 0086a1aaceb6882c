package entities

import "github.com/google/uuid"

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username string    `gorm:"uniqueIndex" json:"username"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	UserType string    `gorm:"default:donor" json:"user_type"` // donor, organization, admin

	Donations []*Donation `gorm:"foreignKey:UserID"`
	FoodItems []*FoodItem `gorm:"foreignKey:UserID"`
	Timestamp
}
