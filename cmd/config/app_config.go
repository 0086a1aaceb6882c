package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"food-donation-tracker/cmd/database/seed"
	"food-donation-tracker/internal/api/handlers"
	"food-donation-tracker/internal/api/routes"
	"food-donation-tracker/internal/middleware"
	"food-donation-tracker/internal/utils"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/internal/utils/storage"
	"food-donation-tracker/pkg/analytics"
	"food-donation-tracker/pkg/dashboard"
	"food-donation-tracker/pkg/donation"
	"food-donation-tracker/pkg/food"
	"food-donation-tracker/pkg/jwt"
	"food-donation-tracker/pkg/organization"
	"food-donation-tracker/pkg/reminder"
	"food-donation-tracker/pkg/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Repositories struct {
	User         user.UserRepository
	Organization organization.OrganizationRepository
	Donation     donation.DonationRepository
	Feedback     donation.FeedbackRepository
	Food         food.FoodRepository
	Waste        food.WasteRepository
}

// NewRepositories returns gorm repositories, or in-memory ones when db is nil.
func NewRepositories(db *gorm.DB) Repositories {
	if db == nil {
		return Repositories{
			User:         user.NewMemoryUserRepository(),
			Organization: organization.NewMemoryOrganizationRepository(),
			Donation:     donation.NewMemoryDonationRepository(),
			Feedback:     donation.NewMemoryFeedbackRepository(),
			Food:         food.NewMemoryFoodRepository(),
			Waste:        food.NewMemoryWasteRepository(),
		}
	}
	return Repositories{
		User:         user.NewUserRepository(db),
		Organization: organization.NewOrganizationRepository(db),
		Donation:     donation.NewDonationRepository(db),
		Feedback:     donation.NewFeedbackRepository(db),
		Food:         food.NewFoodRepository(db),
		Waste:        food.NewWasteRepository(db),
	}
}

type AppOptions struct {
	Repositories Repositories
	JWTService   jwt.JWTService
	Storage      storage.AwsS3
	Log          logger.Logger
	AccessLog    io.Writer
	// RateLimit is requests per second per client; zero disables the limiter.
	RateLimit int
}

func NewApp(db *gorm.DB, log logger.Logger) (*fiber.App, error) {
	accessLog, err := openAccessLog(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, err
	}

	repos := NewRepositories(db)
	if utils.GetBoolConfig("SEED_DATA") {
		added, err := seed.Seed(context.Background(), repos.Organization)
		if err != nil {
			return nil, fmt.Errorf("failed to seed organizations: %w", err)
		}
		log.Infof("seeded %d organizations", added)
	}

	app := Build(AppOptions{
		Repositories: repos,
		JWTService:   jwt.NewJWTService(),
		Storage:      storage.NewAwsS3(),
		Log:          log,
		AccessLog:    accessLog,
		RateLimit:    10,
	})

	if spec := utils.GetConfig("EXPIRY_REMINDER_CRON"); spec != "" {
		scheduler, err := reminder.Schedule(spec, reminder.NewExpiryReminder(repos.Food, repos.User, log))
		if err != nil {
			return nil, err
		}
		app.Hooks().OnShutdown(func() error {
			scheduler.Stop()
			return nil
		})
		log.Infof("expiry reminders scheduled: %s", spec)
	}

	return app, nil
}

// Build wires services, handlers and routes onto a new Fiber app.
func Build(opts AppOptions) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName: "food-donation-tracker",
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	if opts.AccessLog != nil {
		app.Use(middlewares.LoggerMiddleware(opts.AccessLog))
	}
	if opts.RateLimit > 0 {
		app.Use(middlewares.RateLimiter(opts.RateLimit, 1*time.Second))
	}

	repos := opts.Repositories

	// Service
	userService := user.NewUserService(repos.User, opts.JWTService)
	organizationService := organization.NewOrganizationService(repos.Organization)
	donationService := donation.NewDonationService(repos.Donation, repos.Organization, repos.User, opts.Log)
	feedbackService := donation.NewFeedbackService(repos.Donation, repos.Feedback, repos.Organization, opts.Log)
	foodService := food.NewFoodService(repos.Food, opts.Storage, opts.Log)
	wasteService := food.NewWasteService(repos.Waste, repos.Food, opts.Log)
	analyticsService := analytics.NewAnalyticsService(repos.Organization, repos.Donation, repos.Feedback, repos.User, opts.Log)
	dashboardService := dashboard.NewDashboardService(donationService, foodService, organizationService)

	// Handler
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         handlers.NewUserHandler(userService, validator),
		DonationHandler:     handlers.NewDonationHandler(donationService, feedbackService),
		FoodHandler:         handlers.NewFoodHandler(foodService),
		WasteHandler:        handlers.NewWasteHandler(wasteService),
		OrganizationHandler: handlers.NewOrganizationHandler(organizationService, analyticsService),
		DashboardHandler:    handlers.NewDashboardHandler(dashboardService),
		Middleware:          middlewares,
		JWTService:          opts.JWTService,
	}
	routesConfig.Setup()
	return app
}

func openAccessLog(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	return file, nil
}
