package handlers

import (
	"food-donation-tracker/domain"
	"food-donation-tracker/internal/api/presenters"
	"food-donation-tracker/pkg/food"

	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		AddFoodItem(c *fiber.Ctx) error
		GetFoodItems(c *fiber.Ctx) error
		GetFoodCategories(c *fiber.Ctx) error
		GetExpiryOverview(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
		GetFoodItemDetails(c *fiber.Ctx) error
		DeleteFoodItem(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
	}
)

func NewFoodHandler(foodService food.FoodService) FoodHandler {
	return &foodHandler{
		foodService: foodService,
	}
}

func (h *foodHandler) AddFoodItem(c *fiber.Ctx) error {
	req := new(domain.AddFoodItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	item, err := h.foodService.AddFoodItem(c.Context(), *req, userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedAddFoodItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusCreated, domain.MessageSuccessAddFoodItem)
}

func (h *foodHandler) GetFoodItems(c *fiber.Ctx) error {
	req := domain.ListFoodItemsRequest{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 0),
	}

	list, err := h.foodService.GetFoodItems(c.Context(), req, userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, list, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) GetFoodCategories(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.foodService.ListCategories(), fiber.StatusOK, domain.MessageSuccessGetFoodCategories)
}

func (h *foodHandler) GetExpiryOverview(c *fiber.Ctx) error {
	overview, err := h.foodService.GetExpiryOverview(c.Context(), userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetExpiryOverview, err)
	}

	return presenters.SuccessResponse(c, overview, fiber.StatusOK, domain.MessageSuccessGetExpiryOverview)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	req := domain.UploadFoodImageRequest{
		FoodItemID: c.FormValue("food_id"),
	}
	req.Image, _ = c.FormFile("image")

	item, err := h.foodService.UploadFoodImage(c.Context(), req, userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedUploadFoodImage, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessUploadFoodImage)
}

func (h *foodHandler) GetFoodItemDetails(c *fiber.Ctx) error {
	item, err := h.foodService.GetFoodItemByID(c.Context(), c.Params("id"), userIDFrom(c))
	if err != nil {
		return fail(c, domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) DeleteFoodItem(c *fiber.Ctx) error {
	if err := h.foodService.DeleteFoodItem(c.Context(), c.Params("id"), userIDFrom(c)); err != nil {
		return fail(c, domain.MessageFailedDeleteFoodItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodItem)
}
