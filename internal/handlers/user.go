package handlers

import (
	"ledgerpay/internal/services/user"
	"ledgerpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	profile, err := h.userService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get profile")
	}
	return response.Success(c, "Profile", profile)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req user.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), claims.UserID, req)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "Profile updated", profile)
}
