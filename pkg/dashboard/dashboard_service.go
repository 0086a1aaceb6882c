package dashboard

import (
	"context"

	"food-donation-tracker/domain"
	"food-donation-tracker/pkg/donation"
	"food-donation-tracker/pkg/food"
	"food-donation-tracker/pkg/organization"
)

const (
	recentDonationsLimit     = 3
	nearbyOrganizationsLimit = 3
)

type (
	DashboardService interface {
		GetDashboard(ctx context.Context, userID string) (*domain.DashboardResponse, error)
	}

	dashboardService struct {
		donationService     donation.DonationService
		foodService         food.FoodService
		organizationService organization.OrganizationService
	}
)

func NewDashboardService(
	donationService donation.DonationService,
	foodService food.FoodService,
	organizationService organization.OrganizationService,
) DashboardService {
	return &dashboardService{
		donationService:     donationService,
		foodService:         foodService,
		organizationService: organizationService,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*domain.DashboardResponse, error) {
	stats, err := s.donationService.GetDonationStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.donationService.GetUserDonations(ctx, domain.ListDonationsRequest{
		Page:  1,
		Limit: recentDonationsLimit,
	}, userID)
	if err != nil {
		return nil, err
	}

	orgs, err := s.organizationService.ListOrganizations(ctx, domain.ListOrganizationsRequest{})
	if err != nil {
		return nil, err
	}
	if len(orgs) > nearbyOrganizationsLimit {
		orgs = orgs[:nearbyOrganizationsLimit]
	}

	overview, err := s.foodService.GetExpiryOverview(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardResponse{
		Statistics:          stats,
		RecentDonations:     recent.Donations,
		NearbyOrganizations: orgs,
		Expiry:              overview,
	}, nil
}
