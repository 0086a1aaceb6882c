package domain

import (
	"errors"
	"time"
)

// DefaultMaxDistanceKm is the search radius used when none is given.
const DefaultMaxDistanceKm = 10.0

var (
	MessageSuccessGetOrganizations = "organizations retrieved successfully"
	MessageFailedGetOrganizations  = "failed to retrieve organizations"

	ErrOrganizationNotFound = errors.New("organization not found")
	ErrInvalidDistance      = errors.New("invalid distance")
)

type (
	Organization struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Address   string    `json:"address"`
		Distance  float64   `json:"distance"`
		Contact   string    `json:"contact"`
		Email     string    `json:"email"`
		Needs     []string  `json:"needs"`
		Hours     string    `json:"hours"`
		Latitude  float64   `json:"lat"`
		Longitude float64   `json:"lng"`
		CreatedAt time.Time `json:"created_at"`
	}

	ListOrganizationsRequest struct {
		Query       string
		Need        string
		MaxDistance *float64
	}
)

func (o *Organization) SearchFields() []string {
	fields := make([]string, 0, len(o.Needs)+2)
	fields = append(fields, o.Name, o.Address)
	return append(fields, o.Needs...)
}

func (o *Organization) Categories() []string {
	return o.Needs
}

func (o *Organization) DistanceKm() float64 {
	return o.Distance
}
