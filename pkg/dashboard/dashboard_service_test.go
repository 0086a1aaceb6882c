package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-donation-tracker/domain"
	"food-donation-tracker/entities"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/internal/utils/storage"
	"food-donation-tracker/pkg/donation"
	"food-donation-tracker/pkg/food"
	"food-donation-tracker/pkg/organization"
	"food-donation-tracker/pkg/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	orgRepo := organization.NewMemoryOrganizationRepository()
	donationRepo := donation.NewMemoryDonationRepository()
	userID := uuid.New()

	distances := map[string]float64{
		"Hope Community Center": 1.2,
		"Food For All":          2.5,
		"Shelter Foundation":    3.1,
		"Faith Kitchen":         5.1,
	}
	var hope *entities.Organization
	for name, d := range distances {
		org := &entities.Organization{Name: name, Distance: d}
		require.NoError(t, orgRepo.CreateOrganization(ctx, org))
		if name == "Hope Community Center" {
			hope = org
		}
	}

	base := time.Now().Add(-time.Hour)
	for i, status := range []string{"completed", "pending", "confirmed", "cancelled"} {
		require.NoError(t, donationRepo.CreateDonation(ctx, &entities.Donation{
			UserID:           userID,
			OrganizationID:   hope.ID,
			OrganizationName: hope.Name,
			Name:             status + " donation",
			Quantity:         decimal.NewFromInt(10),
			Unit:             "items",
			Status:           status,
			Timestamp:        entities.Timestamp{CreatedAt: base.Add(-time.Duration(i) * time.Minute)},
		}))
	}

	donationService := donation.NewDonationService(donationRepo, orgRepo, user.NewMemoryUserRepository(), logger.NewNopLogger())
	foodService := food.NewFoodService(food.NewMemoryFoodRepository(), storage.NewAwsS3(), logger.NewNopLogger())
	service := NewDashboardService(donationService, foodService, organization.NewOrganizationService(orgRepo))

	got, err := service.GetDashboard(ctx, userID.String())
	require.NoError(t, err)

	assert.Equal(t, 4, got.Statistics.TotalDonations)
	assert.Equal(t, 10, got.Statistics.TotalItemsDonated)
	require.Len(t, got.RecentDonations, 3)
	assert.Equal(t, "completed donation", got.RecentDonations[0].Name)

	require.Len(t, got.NearbyOrganizations, 3)
	assert.Equal(t, "Hope Community Center", got.NearbyOrganizations[0].Name)
	assert.Equal(t, "Shelter Foundation", got.NearbyOrganizations[2].Name)

	assert.Zero(t, got.Expiry.TotalItems)
	assert.Empty(t, got.Expiry.ExpiringItems)
}

type failingDonationService struct {
	donation.DonationService
	mock.Mock
}

func (f *failingDonationService) GetDonationStatistics(ctx context.Context, userID string) (*domain.DonationStatistics, error) {
	args := f.Called(ctx, userID)
	return nil, args.Error(1)
}

func TestGetDashboard_PropagatesErrors(t *testing.T) {
	boom := errors.New("database unavailable")
	donations := new(failingDonationService)
	donations.On("GetDonationStatistics", mock.Anything, "user-1").Return(nil, boom)

	service := NewDashboardService(donations, nil, nil)
	_, err := service.GetDashboard(context.Background(), "user-1")

	assert.ErrorIs(t, err, boom)
	donations.AssertExpectations(t)
}
