package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Donation struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	OrganizationID   uuid.UUID       `gorm:"type:uuid" json:"organization_id"`
	OrganizationName string          `json:"organization_name"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Quantity         decimal.Decimal `gorm:"type:numeric(10,2)" json:"quantity"`
	Unit             string          `json:"unit"`
	Status           string          `gorm:"default:pending" json:"status"` // pending, confirmed, in_transit, completed, cancelled
	DonationDate     time.Time       `gorm:"type:date" json:"donation_date"`
	Notes            string          `json:"notes,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`

	User         *User         `gorm:"foreignKey:UserID"`
	Organization *Organization `gorm:"foreignKey:OrganizationID"`
	Timestamp
}
