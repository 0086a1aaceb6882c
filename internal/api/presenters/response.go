package presenters

import (
	"errors"

	"food-donation-tracker/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool               `json:"status"`
	Message string             `json:"message"`
	Data    any                `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
	Errors  domain.FieldErrors `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the failure envelope. Field errors are listed per field.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	resp := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
		var fieldErrs domain.FieldErrors
		if errors.As(err, &fieldErrs) {
			resp.Errors = fieldErrs
		}
	}
	return c.Status(statusCode).JSON(resp)
}
