package entities

import "github.com/google/uuid"

type DonationFeedback struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"donation_id"`
	Rating     int       `gorm:"type:smallint" json:"rating"` // 1-5
	Comments   string    `json:"comments,omitempty"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;index" json:"created_by"`

	Donation *Donation `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE"`
	Timestamp
}
