// Package response renders the JSON envelope used by all HTTP handlers.
package response

import (
	"errors"

	apperrors "ledgerpay/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func ValidationError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Domain renders a domain error with its code, or a generic 500 for anything
// that is not part of the domain taxonomy.
func Domain(c *fiber.Ctx, err error) error {
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		return ServerError(c, "internal server error")
	}
	return c.Status(statusFor(domainErr.Code)).JSON(fiber.Map{
		"error": domainErr.Message,
		"code":  domainErr.Code,
	})
}

func statusFor(code string) int {
	switch code {
	case "USER_NOT_FOUND", "PAYMENT_NOT_FOUND":
		return fiber.StatusNotFound
	case "INVALID_STATE", "PERSISTENCE_CONFLICT":
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}
