package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FoodItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"` // produce, dairy, bakery, prepared, frozen, canned, beverages
	Quantity   decimal.Decimal `gorm:"type:numeric(10,2)" json:"quantity"`
	Unit       string          `json:"unit"`
	ExpiryDate time.Time       `gorm:"type:date" json:"expiry_date"`
	Notes      string          `json:"notes,omitempty"`
	ImageURL   string          `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
