package handlers

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/internal/api/presenters"
	"MangaVerse-Backend/pkg/midtrans"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MidtransHandler interface {
		BuyTokens(c *fiber.Ctx) error
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	midtransHandler struct {
		midtransService midtrans.MidtransService
		validator       *validator.Validate
	}
)

func NewMidtransHandler(midtransService midtrans.MidtransService, validator *validator.Validate) MidtransHandler {
	return &midtransHandler{
		midtransService: midtransService,
		validator:       validator,
	}
}

func (h *midtransHandler) BuyTokens(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.BuyTokensRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBuyTokens, err)
	}

	resp, err := h.midtransService.BuyTokens(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBuyTokens, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessBuyTokens)
}

func (h *midtransHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	notification := new(domain.MidtransNotification)
	if err := c.BodyParser(notification); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.midtransService.HandleNotification(c.Context(), *notification); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessNotification, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessProcessNotification)
}
