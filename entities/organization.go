package entities

import "github.com/google/uuid"

type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Distance  float64   `json:"distance"` // km, precomputed
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Needs     string    `json:"needs"` // comma separated
	Hours     string    `json:"hours"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`

	// UserID links the account that manages the organization, if any.
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`

	Donations []*Donation `gorm:"foreignKey:OrganizationID"`
	Timestamp
}
