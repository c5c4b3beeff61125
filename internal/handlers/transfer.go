package handlers

import (
	"ledgerpay/internal/services/transfer"
	"ledgerpay/internal/utils/response"
	"ledgerpay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	transferService transfer.Service
}

func NewTransferHandler(transferService transfer.Service) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req transfer.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	result, err := h.transferService.TransferFunds(c.Context(), claims.UserID, req)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Transfer successful", result)
}
