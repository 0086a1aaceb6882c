package routes

import (
	"food-donation-tracker/internal/api/handlers"
	"food-donation-tracker/internal/middleware"
	"food-donation-tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	DonationHandler     handlers.DonationHandler
	FoodHandler         handlers.FoodHandler
	WasteHandler        handlers.WasteHandler
	OrganizationHandler handlers.OrganizationHandler
	DashboardHandler    handlers.DashboardHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Donations()
	c.FoodItems()
	c.WasteLogs()
	c.Organizations()
	c.Dashboard()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))
	donations.Get("/statuses", c.DonationHandler.GetDonationStatuses)
	donations.Get("/statistics", c.DonationHandler.GetDonationStatistics)

	donations.Post("", c.DonationHandler.CreateDonation)
	donations.Get("", c.DonationHandler.GetUserDonations)
	donations.Get("/:id", c.DonationHandler.GetDonationByID)
	donations.Patch("/:id/status", c.DonationHandler.UpdateDonationStatus)
	donations.Delete("/:id", c.DonationHandler.DeleteDonation)
	donations.Post("/:id/feedback", c.DonationHandler.AddFeedback)
	donations.Get("/:id/feedback", c.DonationHandler.GetFeedback)
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	foodItems.Get("/categories", c.FoodHandler.GetFoodCategories)
	foodItems.Get("/expiry", c.FoodHandler.GetExpiryOverview)
	foodItems.Post("/image", c.FoodHandler.UploadFoodImage)

	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)
}

func (c *Config) WasteLogs() {
	waste := c.App.Group("/api/v1/waste-logs", c.Middleware.AuthMiddleware(c.JWTService))
	waste.Get("/reasons", c.WasteHandler.GetWasteReasons)
	waste.Get("/summary", c.WasteHandler.GetWasteSummary)

	waste.Post("", c.WasteHandler.LogWaste)
	waste.Get("", c.WasteHandler.GetWasteLogs)
	waste.Delete("/:id", c.WasteHandler.DeleteWasteLog)
}

func (c *Config) Organizations() {
	organizations := c.App.Group("/api/v1/organizations", c.Middleware.AuthMiddleware(c.JWTService))
	organizations.Get("", c.OrganizationHandler.GetOrganizations)
	organizations.Get("/:id", c.OrganizationHandler.GetOrganizationByID)
	organizations.Get("/:id/analytics", c.OrganizationHandler.GetOrganizationAnalytics)
}

func (c *Config) Dashboard() {
	c.App.Get("/api/v1/dashboard", c.Middleware.AuthMiddleware(c.JWTService), c.DashboardHandler.GetDashboard)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
