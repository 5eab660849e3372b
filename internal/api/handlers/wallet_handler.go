package handlers

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/internal/api/presenters"
	"MangaVerse-Backend/pkg/wallet"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WalletHandler interface {
		GetWallet(c *fiber.Ctx) error
		GetTransactionHistory(c *fiber.Ctx) error
		GetTokenPackages(c *fiber.Ctx) error
		RewardCoins(c *fiber.Ctx) error
	}

	walletHandler struct {
		walletService wallet.WalletService
		validator     *validator.Validate
	}
)

func NewWalletHandler(walletService wallet.WalletService, validator *validator.Validate) WalletHandler {
	return &walletHandler{
		walletService: walletService,
		validator:     validator,
	}
}

func (h *walletHandler) GetWallet(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	balance, err := h.walletService.GetOrCreateWallet(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWallet, err)
	}

	return presenters.SuccessResponse(c, balance, fiber.StatusOK, domain.MessageSuccessGetWallet)
}

func (h *walletHandler) GetTransactionHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	transactions, count, err := h.walletService.GetTransactionHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWalletHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetWalletHistory)
}

func (h *walletHandler) GetTokenPackages(c *fiber.Ctx) error {
	packages, err := h.walletService.GetTokenPackages(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTokenPackages, err)
	}

	return presenters.SuccessResponse(c, packages, fiber.StatusOK, domain.MessageSuccessGetTokenPackages)
}

func (h *walletHandler) RewardCoins(c *fiber.Ctx) error {
	req := new(domain.RewardCoinsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRewardCoins, err)
	}

	if err := h.walletService.RewardCoins(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRewardCoins, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRewardCoins)
}
