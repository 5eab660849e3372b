package handlers

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/internal/api/presenters"
	"MangaVerse-Backend/pkg/access"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	AccessHandler interface {
		CheckChapterAccess(c *fiber.Ctx) error
		CheckMangaAccess(c *fiber.Ctx) error
	}

	accessHandler struct {
		accessService access.AccessService
	}
)

func NewAccessHandler(accessService access.AccessService) AccessHandler {
	return &accessHandler{
		accessService: accessService,
	}
}

func accessErrorStatus(err error) int {
	if errors.Is(err, domain.ErrChapterNotFound) || errors.Is(err, domain.ErrMangaNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadRequest
}

func (h *accessHandler) CheckChapterAccess(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	chapterID := c.Params("id")

	result, err := h.accessService.HasChapterAccess(c.Context(), userID, chapterID)
	if err != nil {
		return presenters.ErrorResponse(c, accessErrorStatus(err), domain.MessageFailedCheckAccess, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessCheckAccess)
}

func (h *accessHandler) CheckMangaAccess(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	mangaID := c.Params("id")

	result, err := h.accessService.HasMangaAccess(c.Context(), userID, mangaID)
	if err != nil {
		return presenters.ErrorResponse(c, accessErrorStatus(err), domain.MessageFailedCheckAccess, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessCheckAccess)
}
