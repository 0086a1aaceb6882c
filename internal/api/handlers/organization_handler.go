package handlers

import (
	"strconv"
	"strings"

	"food-donation-tracker/domain"
	"food-donation-tracker/internal/api/presenters"
	"food-donation-tracker/pkg/analytics"
	"food-donation-tracker/pkg/organization"

	"github.com/gofiber/fiber/v2"
)

type (
	OrganizationHandler interface {
		GetOrganizations(c *fiber.Ctx) error
		GetOrganizationByID(c *fiber.Ctx) error
		GetOrganizationAnalytics(c *fiber.Ctx) error
	}

	organizationHandler struct {
		organizationService organization.OrganizationService
		analyticsService    analytics.AnalyticsService
	}
)

func NewOrganizationHandler(organizationService organization.OrganizationService, analyticsService analytics.AnalyticsService) OrganizationHandler {
	return &organizationHandler{
		organizationService: organizationService,
		analyticsService:    analyticsService,
	}
}

func (h *organizationHandler) GetOrganizations(c *fiber.Ctx) error {
	req := domain.ListOrganizationsRequest{
		Query: c.Query("q"),
		Need:  c.Query("need"),
	}

	if raw := strings.TrimSpace(c.Query("max_distance")); raw != "" {
		maxDistance, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(c, domain.MessageFailedValidation, domain.FieldErrors{
				"max_distance": "Max distance must be a number",
			})
		}
		req.MaxDistance = &maxDistance
	}

	orgs, err := h.organizationService.ListOrganizations(c.Context(), req)
	if err != nil {
		return fail(c, domain.MessageFailedGetOrganizations, err)
	}

	return presenters.SuccessResponse(c, orgs, fiber.StatusOK, domain.MessageSuccessGetOrganizations)
}

func (h *organizationHandler) GetOrganizationByID(c *fiber.Ctx) error {
	org, err := h.organizationService.GetOrganizationByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, domain.MessageFailedGetOrganizations, err)
	}

	return presenters.SuccessResponse(c, org, fiber.StatusOK, domain.MessageSuccessGetOrganizations)
}

func (h *organizationHandler) GetOrganizationAnalytics(c *fiber.Ctx) error {
	report, err := h.analyticsService.GetOrganizationAnalytics(c.Context(), c.Params("id"), c.Query("period"), userIDFrom(c), roleFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetOrganizationAnalytics, err)
	}

	return presenters.SuccessResponse(c, report, fiber.StatusOK, domain.MessageSuccessGetOrganizationAnalytics)
}
