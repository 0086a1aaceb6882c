package domain

import "fmt"

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusConfirmed DonationStatus = "confirmed"
	DonationStatusInTransit DonationStatus = "in_transit"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusCancelled DonationStatus = "cancelled"
)

type DonationStatusInfo struct {
	ID    DonationStatus `json:"id"`
	Name  string         `json:"name"`
	Color string         `json:"color"`
}

// DonationStatuses lists the closed status set in display order.
func DonationStatuses() []DonationStatus {
	return []DonationStatus{
		DonationStatusPending,
		DonationStatusConfirmed,
		DonationStatusInTransit,
		DonationStatusCompleted,
		DonationStatusCancelled,
	}
}

// ParseDonationStatus matches key exactly. Unknown keys are rejected rather
// than defaulting to pending.
func ParseDonationStatus(key string) (DonationStatus, error) {
	for _, s := range DonationStatuses() {
		if string(s) == key {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDonationStatus, key)
}

func (s DonationStatus) Label() string {
	switch s {
	case DonationStatusPending:
		return "Pending"
	case DonationStatusConfirmed:
		return "Confirmed"
	case DonationStatusInTransit:
		return "In Transit"
	case DonationStatusCompleted:
		return "Completed"
	case DonationStatusCancelled:
		return "Cancelled"
	}
	return ""
}

func (s DonationStatus) Color() string {
	switch s {
	case DonationStatusPending:
		return "yellow"
	case DonationStatusConfirmed:
		return "green"
	case DonationStatusInTransit:
		return "blue"
	case DonationStatusCompleted:
		return "primary"
	case DonationStatusCancelled:
		return "red"
	}
	return ""
}

func (s DonationStatus) Info() DonationStatusInfo {
	return DonationStatusInfo{ID: s, Name: s.Label(), Color: s.Color()}
}
