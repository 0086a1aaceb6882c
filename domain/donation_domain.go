package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreateDonation      = "donation created successfully"
	MessageSuccessGetDonations        = "donations retrieved successfully"
	MessageSuccessGetDonationStatuses = "donation statuses retrieved successfully"
	MessageSuccessGetDonationStats    = "donation statistics retrieved successfully"
	MessageSuccessUpdateDonation      = "donation updated successfully"
	MessageSuccessDeleteDonation      = "donation deleted successfully"
	MessageSuccessAddFeedback         = "feedback added successfully"
	MessageSuccessGetFeedback         = "feedback retrieved successfully"

	MessageFailedCreateDonation   = "failed to create donation"
	MessageFailedGetDonations     = "failed to retrieve donations"
	MessageFailedGetDonationStats = "failed to retrieve donation statistics"
	MessageFailedUpdateDonation   = "failed to update donation"
	MessageFailedDeleteDonation   = "failed to delete donation"
	MessageFailedAddFeedback      = "failed to add feedback"
	MessageFailedGetFeedback      = "failed to retrieve feedback"

	ErrDonationNotFound           = errors.New("donation not found")
	ErrUnauthorizedDonationAccess = errors.New("unauthorized access to donation")
	ErrInvalidDonationStatus      = errors.New("invalid donation status")
	ErrInvalidDonationDate        = errors.New("invalid donation date")
	ErrFeedbackExists             = errors.New("feedback already exists for this donation")
	ErrFeedbackNotFound           = errors.New("feedback not found")
)

// Impact factors applied to completed donations.
const (
	KgPerDonatedItem    = 0.25
	CO2KgPerFoodKg      = 2.5
	MealsPerDonatedItem = 0.8
)

type (
	DonationRequest struct {
		Name           string `json:"name" validate:"notblank"`
		Description    string `json:"description" validate:"omitempty"`
		Quantity       string `json:"quantity" validate:"notblank,positive_decimal"`
		Unit           string `json:"unit" validate:"required,oneof=kg liters servings items packages loaves cans"`
		OrganizationID string `json:"organization_id" validate:"required,uuid"`
		DonationDate   string `json:"donation_date" validate:"required,calendar_date"`
		Notes          string `json:"notes" validate:"omitempty"`
	}

	ListDonationsRequest struct {
		Query  string
		Status string
		Page   int
		Limit  int
	}

	UpdateDonationStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending confirmed in_transit completed cancelled"`
	}

	Donation struct {
		ID               string          `json:"id"`
		UserID           string          `json:"user_id"`
		Name             string          `json:"name"`
		Description      string          `json:"description"`
		Quantity         decimal.Decimal `json:"quantity"`
		Unit             string          `json:"unit"`
		OrganizationID   string          `json:"organization_id"`
		OrganizationName string          `json:"organization"`
		Status           DonationStatus  `json:"status"`
		StatusLabel      string          `json:"status_label"`
		StatusColor      string          `json:"status_color"`
		DonationDate     time.Time       `json:"donation_date"`
		Notes            string          `json:"notes,omitempty"`
		CreatedAt        time.Time       `json:"created_at"`
		UpdatedAt        time.Time       `json:"updated_at"`
		CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	}

	DonationList struct {
		Donations  []*Donation `json:"donations"`
		Pagination Pagination  `json:"pagination"`
	}

	DonationFeedbackRequest struct {
		Rating   int    `json:"rating" validate:"required,oneof=1 2 3 4 5"`
		Comments string `json:"comments" validate:"omitempty,max=2000"`
	}

	DonationFeedback struct {
		ID         string    `json:"id"`
		DonationID string    `json:"donation_id"`
		Rating     int       `json:"rating"`
		Comments   string    `json:"comments,omitempty"`
		CreatedBy  string    `json:"created_by"`
		CreatedAt  time.Time `json:"created_at"`
	}

	DonationStatistics struct {
		TotalDonations       int            `json:"total_donations"`
		ByStatus             map[string]int `json:"by_status"`
		CompletedDonations   int            `json:"completed_donations"`
		PendingDonations     int            `json:"pending_donations"`
		OrganizationsHelped  int            `json:"organizations_helped"`
		TotalItemsDonated    int            `json:"total_items_donated"`
		FoodWasteSaved       float64        `json:"food_waste_saved"`      // in kg
		EstimatedCO2Reduced  float64        `json:"estimated_co2_reduced"` // in kg
		EstimatedMealsServed int            `json:"estimated_meals_served"`
		EstimatedImpact      string         `json:"estimated_impact"`
	}
)

// SearchFields are the fields the donation list search box looks at.
func (d *Donation) SearchFields() []string {
	return []string{d.Name, d.OrganizationName, d.Description}
}

func (d *Donation) Categories() []string {
	return []string{string(d.Status)}
}
