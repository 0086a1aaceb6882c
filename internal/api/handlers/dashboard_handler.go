package handlers

import (
	"food-donation-tracker/domain"
	"food-donation-tracker/internal/api/presenters"
	"food-donation-tracker/pkg/dashboard"

	"github.com/gofiber/fiber/v2"
)

type (
	DashboardHandler interface {
		GetDashboard(c *fiber.Ctx) error
	}

	dashboardHandler struct {
		dashboardService dashboard.DashboardService
	}
)

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *dashboardHandler) GetDashboard(c *fiber.Ctx) error {
	resp, err := h.dashboardService.GetDashboard(c.Context(), userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
