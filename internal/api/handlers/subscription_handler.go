package handlers

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/internal/api/presenters"
	"MangaVerse-Backend/pkg/subscription"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SubscriptionHandler interface {
		GetActiveSubscription(c *fiber.Ctx) error
		Subscribe(c *fiber.Ctx) error
		Cancel(c *fiber.Ctx) error
		GetPlans(c *fiber.Ctx) error
		GetBenefits(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
		validator           *validator.Validate
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService, validator *validator.Validate) SubscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: subscriptionService,
		validator:           validator,
	}
}

func (h *subscriptionHandler) GetActiveSubscription(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	sub, err := h.subscriptionService.GetActiveSubscription(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSubscription, err)
	}

	return presenters.SuccessResponse(c, sub, fiber.StatusOK, domain.MessageSuccessGetSubscription)
}

func (h *subscriptionHandler) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SubscribeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubscribe, err)
	}

	sub, err := h.subscriptionService.Subscribe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, sub, fiber.StatusCreated, domain.MessageSuccessSubscribe)
}

func (h *subscriptionHandler) Cancel(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CancelSubscriptionRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelSubscription, err)
	}

	sub, err := h.subscriptionService.Cancel(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelSubscription, err)
	}

	return presenters.SuccessResponse(c, sub, fiber.StatusOK, domain.MessageSuccessCancelSubscription)
}

func (h *subscriptionHandler) GetPlans(c *fiber.Ctx) error {
	plans := h.subscriptionService.GetPlans(c.Context())
	return presenters.SuccessResponse(c, plans, fiber.StatusOK, domain.MessageSuccessGetPlans)
}

func (h *subscriptionHandler) GetBenefits(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	benefits, err := h.subscriptionService.GetBenefits(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBenefits, err)
	}

	return presenters.SuccessResponse(c, benefits, fiber.StatusOK, domain.MessageSuccessGetBenefits)
}

func (h *subscriptionHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	subscriptions, count, err := h.subscriptionService.GetHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSubscriptionLogs, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"subscriptions": subscriptions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetSubscriptionLogs)
}
