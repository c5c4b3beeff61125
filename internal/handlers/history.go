package handlers

import (
	"strconv"

	"ledgerpay/internal/services/history"
	"ledgerpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type HistoryHandler struct {
	historyService history.Service
}

func NewHistoryHandler(historyService history.Service) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) GetHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	entries, err := h.historyService.GetPaymentHistory(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Payment history", entries)
}

func (h *HistoryHandler) GetPaymentDetails(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	paymentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	details, err := h.historyService.GetPaymentDetails(c.Context(), claims.UserID, uint(paymentID))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Payment details", details)
}

func (h *HistoryHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	balance, err := h.historyService.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Balance", balance)
}
