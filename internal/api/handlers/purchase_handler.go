package handlers

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/internal/api/presenters"
	"MangaVerse-Backend/pkg/purchase"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PurchaseHandler interface {
		BuyChapter(c *fiber.Ctx) error
		BuyManga(c *fiber.Ctx) error
		RefundPurchase(c *fiber.Ctx) error
		GetPurchaseHistory(c *fiber.Ctx) error
		MakeDonation(c *fiber.Ctx) error
		GetDonationOptions(c *fiber.Ctx) error
	}

	purchaseHandler struct {
		purchaseService purchase.PurchaseService
		validator       *validator.Validate
	}
)

func NewPurchaseHandler(purchaseService purchase.PurchaseService, validator *validator.Validate) PurchaseHandler {
	return &purchaseHandler{
		purchaseService: purchaseService,
		validator:       validator,
	}
}

func (h *purchaseHandler) BuyChapter(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.BuyChapterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBuyChapter, err)
	}

	result, err := h.purchaseService.BuyChapter(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBuyChapter, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessBuyChapter)
}

func (h *purchaseHandler) BuyManga(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.BuyMangaRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBuyManga, err)
	}

	result, err := h.purchaseService.BuyManga(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBuyManga, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessBuyManga)
}

func (h *purchaseHandler) RefundPurchase(c *fiber.Ctx) error {
	req := new(domain.RefundPurchaseRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRefundPurchase, err)
	}

	result, err := h.purchaseService.MarkRefunded(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRefundPurchase, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessRefundPurchase)
}

func (h *purchaseHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	purchases, count, err := h.purchaseService.GetPurchaseHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPurchaseHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"purchases": purchases,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetPurchaseHistory)
}

func (h *purchaseHandler) MakeDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.MakeDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMakeDonation, err)
	}

	result, err := h.purchaseService.MakeDonation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMakeDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessMakeDonation)
}

func (h *purchaseHandler) GetDonationOptions(c *fiber.Ctx) error {
	options := h.purchaseService.GetDonationOptions(c.Context())
	return presenters.SuccessResponse(c, options, fiber.StatusOK, domain.MessageSuccessGetDonationOptions)
}
