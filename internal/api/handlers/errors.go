package handlers

import (
	"errors"

	"food-donation-tracker/domain"
	"food-donation-tracker/internal/api/presenters"
	"food-donation-tracker/internal/utils/storage"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	var fieldErrs domain.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDonationNotFound),
		errors.Is(err, domain.ErrFoodItemNotFound),
		errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrFeedbackNotFound),
		errors.Is(err, domain.ErrWasteLogNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedDonationAccess),
		errors.Is(err, domain.ErrUnauthorizedAccess),
		errors.Is(err, domain.ErrUnauthorizedWasteLogAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrFeedbackExists):
		return fiber.StatusConflict
	case errors.Is(err, storage.ErrStorageDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidDonationStatus),
		errors.Is(err, domain.ErrInvalidDonationDate),
		errors.Is(err, domain.ErrInvalidFoodCategory),
		errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidDistance),
		errors.Is(err, domain.ErrInvalidWasteReason),
		errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, storage.ErrFileTypeNotAllowed):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, message string, err error) error {
	return presenters.ErrorResponse(c, statusFor(err), message, err)
}

func userIDFrom(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

func roleFrom(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
