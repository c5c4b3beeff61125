package handlers

import (
	"strconv"

	"ledgerpay/internal/services/payment"
	"ledgerpay/internal/utils/response"
	"ledgerpay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req payment.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	result, err := h.paymentService.CreatePayment(c.Context(), claims.UserID, req)
	if err != nil {
		return response.Domain(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payment created",
		"data":    result,
	})
}

func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	reference := c.Params("reference")
	if reference == "" {
		return response.BadRequest(c, "Missing payment reference")
	}

	result, err := h.paymentService.VerifyPayment(c.Context(), claims.UserID, reference)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Payment verified", result)
}

func (h *PaymentHandler) RefundPayment(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	paymentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment id")
	}

	var input struct {
		Amount int64 `json:"amount" validate:"required,gt=0"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := validation.ValidateStruct(&input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	result, err := h.paymentService.RefundPayment(c.Context(), claims.UserID, uint(paymentID), input.Amount)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Payment refunded", result)
}
