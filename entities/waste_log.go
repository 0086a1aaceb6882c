package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WasteLog struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	FoodItemID *uuid.UUID      `gorm:"type:uuid" json:"food_item_id,omitempty"`
	FoodName   string          `json:"food_name"`
	Category   string          `json:"category,omitempty"`
	Quantity   decimal.Decimal `gorm:"type:numeric(10,2)" json:"quantity"`
	Unit       string          `json:"unit"`
	WasteDate  time.Time       `gorm:"type:date;index" json:"waste_date"`
	Reason     string          `json:"reason"` // expired, spoiled, damaged, excess, other
	Notes      string          `json:"notes,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
