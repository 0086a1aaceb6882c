package handlers

import (
	"food-donation-tracker/domain"
	"food-donation-tracker/internal/api/presenters"
	"food-donation-tracker/pkg/food"

	"github.com/gofiber/fiber/v2"
)

type (
	WasteHandler interface {
		LogWaste(c *fiber.Ctx) error
		GetWasteLogs(c *fiber.Ctx) error
		GetWasteReasons(c *fiber.Ctx) error
		GetWasteSummary(c *fiber.Ctx) error
		DeleteWasteLog(c *fiber.Ctx) error
	}

	wasteHandler struct {
		wasteService food.WasteService
	}
)

func NewWasteHandler(wasteService food.WasteService) WasteHandler {
	return &wasteHandler{
		wasteService: wasteService,
	}
}

func (h *wasteHandler) LogWaste(c *fiber.Ctx) error {
	req := new(domain.LogWasteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	wasteLog, err := h.wasteService.LogWaste(c.Context(), *req, userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedLogWaste, err)
	}

	return presenters.SuccessResponse(c, wasteLog, fiber.StatusCreated, domain.MessageSuccessLogWaste)
}

func (h *wasteHandler) GetWasteLogs(c *fiber.Ctx) error {
	req := domain.ListWasteLogsRequest{
		Query:    c.Query("q"),
		Reason:   c.Query("reason"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 0),
	}

	list, err := h.wasteService.GetWasteLogs(c.Context(), req, userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetWasteLogs, err)
	}

	return presenters.SuccessResponse(c, list, fiber.StatusOK, domain.MessageSuccessGetWasteLogs)
}

func (h *wasteHandler) GetWasteReasons(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.wasteService.ListReasons(), fiber.StatusOK, domain.MessageSuccessGetWasteReasons)
}

func (h *wasteHandler) GetWasteSummary(c *fiber.Ctx) error {
	summary, err := h.wasteService.GetWasteSummary(c.Context(), c.Query("period"), userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetWasteSummary, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGetWasteSummary)
}

func (h *wasteHandler) DeleteWasteLog(c *fiber.Ctx) error {
	if err := h.wasteService.DeleteWasteLog(c.Context(), c.Params("id"), userIDFrom(c)); err != nil {
		return fail(c, domain.MessageFailedDeleteWasteLog, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteWasteLog)
}
