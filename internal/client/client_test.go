package client_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"food-donation-tracker/cmd/config"
	"food-donation-tracker/cmd/database/seed"
	"food-donation-tracker/domain"
	"food-donation-tracker/internal/client"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/internal/utils/storage"
	"food-donation-tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	app    *fiber.App
	client *client.Client
}

func (suite *ClientTestSuite) SetupSuite() {
	repos := config.NewRepositories(nil)
	_, err := seed.Seed(context.Background(), repos.Organization)
	suite.Require().NoError(err)

	suite.app = config.Build(config.AppOptions{
		Repositories: repos,
		JWTService:   jwt.NewJWTServiceWithSecret("client-test"),
		Storage:      storage.NewAwsS3(),
		Log:          logger.NewNopLogger(),
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	suite.Require().NoError(err)
	go func() { _ = suite.app.Listener(ln) }()

	suite.client = client.New("http://" + ln.Addr().String())
}

func (suite *ClientTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.app.Shutdown())
}

func (suite *ClientTestSuite) TestRequiresToken() {
	_, err := suite.client.Dashboard()
	suite.ErrorIs(err, client.ErrNotAuthenticated)
}

func (suite *ClientTestSuite) TestDonorFlow() {
	auth, err := suite.client.Register(domain.RegisterRequest{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "correct-horse",
	})
	suite.Require().NoError(err)
	suite.Equal("amira", auth.User.Username)
	suite.Equal(domain.RoleDonor, auth.User.UserType)

	_, err = suite.client.Login(domain.LoginRequest{Email: "amira@example.com", Password: "wrong-password"})
	var apiErr *client.APIError
	suite.Require().True(errors.As(err, &apiErr))
	suite.Equal(fiber.StatusUnauthorized, apiErr.StatusCode)

	auth, err = suite.client.Login(domain.LoginRequest{Email: "AMIRA@example.com", Password: "correct-horse"})
	suite.Require().NoError(err)
	c := suite.client.WithToken(auth.Token)

	me, err := c.Me()
	suite.Require().NoError(err)
	suite.Equal("amira@example.com", me.Email)

	maxDistance := 3.0
	orgs, err := c.ListOrganizations(domain.ListOrganizationsRequest{MaxDistance: &maxDistance})
	suite.Require().NoError(err)
	suite.Len(orgs, 3)

	created, err := c.CreateDonation(domain.DonationRequest{
		Name:           "Fresh Vegetables",
		Quantity:       "5",
		Unit:           "kg",
		OrganizationID: orgs[0].ID,
		DonationDate:   "2025-03-15",
	})
	suite.Require().NoError(err)
	suite.Equal(domain.DonationStatusPending, created.Status)
	suite.Equal(orgs[0].Name, created.OrganizationName)

	updated, err := c.UpdateDonationStatus(created.ID, "completed")
	suite.Require().NoError(err)
	suite.Equal("Completed", updated.StatusLabel)
	suite.NotNil(updated.CompletedAt)

	_, err = c.UpdateDonationStatus(created.ID, "lost")
	suite.Require().True(errors.As(err, &apiErr))
	suite.Equal(fiber.StatusBadRequest, apiErr.StatusCode)

	list, err := c.ListDonations(domain.ListDonationsRequest{Query: "vegetables", Status: "completed"})
	suite.Require().NoError(err)
	suite.Len(list.Donations, 1)

	stats, err := c.DonationStatistics()
	suite.Require().NoError(err)
	suite.Equal(5, stats.TotalItemsDonated)
	suite.Equal(4, stats.EstimatedMealsServed)

	item, err := c.AddFoodItem(domain.AddFoodItemRequest{
		Name:       "Yogurt",
		Category:   "dairy",
		Quantity:   "4",
		Unit:       "items",
		ExpiryDate: "2099-01-01",
	})
	suite.Require().NoError(err)
	suite.Equal("Dairy", item.CategoryName)

	items, err := c.ListFoodItems(domain.ListFoodItemsRequest{Category: "all"})
	suite.Require().NoError(err)
	suite.Len(items.Items, 1)

	dash, err := c.Dashboard()
	suite.Require().NoError(err)
	suite.Equal(1, dash.Statistics.TotalDonations)
	suite.Len(dash.NearbyOrganizations, 3)
}

func (suite *ClientTestSuite) TestFieldErrors() {
	_, err := suite.client.Register(domain.RegisterRequest{Username: "zo", Email: "not-an-email"})

	var apiErr *client.APIError
	suite.Require().True(errors.As(err, &apiErr))
	suite.Equal(fiber.StatusUnprocessableEntity, apiErr.StatusCode)
	suite.Contains(apiErr.Fields, "email")
	suite.Contains(apiErr.Fields, "password")
	suite.Contains(apiErr.Error(), "\n  email: ")
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
