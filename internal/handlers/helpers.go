// Package handlers contains the fiber HTTP handlers. Handlers parse and
// validate requests, delegate to the services and render the JSON envelope;
// no business rules live here.
package handlers

import (
	"ledgerpay/internal/middleware"
	"ledgerpay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// extractUserClaims pulls the authenticated claims set by the auth middleware.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals(middleware.ClaimsKey).(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
