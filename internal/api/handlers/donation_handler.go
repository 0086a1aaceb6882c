package handlers

import (
	"food-donation-tracker/domain"
	"food-donation-tracker/internal/api/presenters"
	"food-donation-tracker/pkg/donation"

	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateDonation(c *fiber.Ctx) error
		GetUserDonations(c *fiber.Ctx) error
		GetDonationStatuses(c *fiber.Ctx) error
		GetDonationStatistics(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		UpdateDonationStatus(c *fiber.Ctx) error
		DeleteDonation(c *fiber.Ctx) error
		AddFeedback(c *fiber.Ctx) error
		GetFeedback(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		feedbackService donation.FeedbackService
	}
)

func NewDonationHandler(donationService donation.DonationService, feedbackService donation.FeedbackService) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		feedbackService: feedbackService,
	}
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	req := new(domain.DonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	donation, err := h.donationService.CreateDonation(c.Context(), *req, userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, donation, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetUserDonations(c *fiber.Ctx) error {
	req := domain.ListDonationsRequest{
		Query:  c.Query("q"),
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
	}

	list, err := h.donationService.GetUserDonations(c.Context(), req, userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, list, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationStatuses(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.donationService.ListStatuses(), fiber.StatusOK, domain.MessageSuccessGetDonationStatuses)
}

func (h *donationHandler) GetDonationStatistics(c *fiber.Ctx) error {
	stats, err := h.donationService.GetDonationStatistics(c.Context(), userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetDonationStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDonationStats)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	donation, err := h.donationService.GetDonationByID(c.Context(), c.Params("id"), userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, donation, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) UpdateDonationStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateDonationStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	donation, err := h.donationService.UpdateDonationStatus(c.Context(), c.Params("id"), *req, userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, donation, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *donationHandler) DeleteDonation(c *fiber.Ctx) error {
	if err := h.donationService.DeleteDonation(c.Context(), c.Params("id"), userIDFrom(c)); err != nil {
		return fail(c, domain.MessageFailedDeleteDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonation)
}

func (h *donationHandler) AddFeedback(c *fiber.Ctx) error {
	req := new(domain.DonationFeedbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	feedback, err := h.feedbackService.AddFeedback(c.Context(), c.Params("id"), *req, userIDFrom(c), roleFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedAddFeedback, err)
	}

	return presenters.SuccessResponse(c, feedback, fiber.StatusCreated, domain.MessageSuccessAddFeedback)
}

func (h *donationHandler) GetFeedback(c *fiber.Ctx) error {
	feedback, err := h.feedbackService.GetFeedback(c.Context(), c.Params("id"), userIDFrom(c), roleFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetFeedback, err)
	}

	return presenters.SuccessResponse(c, feedback, fiber.StatusOK, domain.MessageSuccessGetFeedback)
}
