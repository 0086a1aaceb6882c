package domain

var (
	MessageSuccessGetDashboard = "dashboard retrieved successfully"
	MessageFailedGetDashboard  = "failed to retrieve dashboard"
)

type DashboardResponse struct {
	Statistics          *DonationStatistics `json:"statistics"`
	RecentDonations     []*Donation         `json:"recent_donations"`
	NearbyOrganizations []*Organization     `json:"nearby_organizations"`
	Expiry              *ExpiryOverview     `json:"expiry"`
}
