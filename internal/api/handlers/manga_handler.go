package handlers

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/internal/api/presenters"
	"MangaVerse-Backend/pkg/manga"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MangaHandler interface {
		CreateManga(c *fiber.Ctx) error
		GetMangas(c *fiber.Ctx) error
		GetMangaDetails(c *fiber.Ctx) error
		UpdateManga(c *fiber.Ctx) error
		UploadCover(c *fiber.Ctx) error
		AddChapter(c *fiber.Ctx) error
		GetChapters(c *fiber.Ctx) error
		GetChapterDetails(c *fiber.Ctx) error
	}

	mangaHandler struct {
		mangaService manga.MangaService
		validator    *validator.Validate
	}
)

func NewMangaHandler(mangaService manga.MangaService, validator *validator.Validate) MangaHandler {
	return &mangaHandler{
		mangaService: mangaService,
		validator:    validator,
	}
}

func (h *mangaHandler) CreateManga(c *fiber.Ctx) error {
	req := new(domain.CreateMangaRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateManga, err)
	}

	result, err := h.mangaService.CreateManga(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateManga, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessCreateManga)
}

func (h *mangaHandler) GetMangas(c *fiber.Ctx) error {
	search := c.Query("search")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	mangas, count, err := h.mangaService.GetMangas(c.Context(), search, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMangas, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"mangas": mangas,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetMangas)
}

func (h *mangaHandler) GetMangaDetails(c *fiber.Ctx) error {
	result, err := h.mangaService.GetMangaByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetManga, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetManga)
}

func (h *mangaHandler) UpdateManga(c *fiber.Ctx) error {
	req := new(domain.UpdateMangaRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateManga, err)
	}

	result, err := h.mangaService.UpdateManga(c.Context(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateManga, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateManga)
}

func (h *mangaHandler) UploadCover(c *fiber.Ctx) error {
	req := new(domain.UploadCoverRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if cover, err := c.FormFile("cover"); err == nil {
		req.Cover = cover
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadCover, err)
	}

	coverURL, err := h.mangaService.UploadCover(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadCover, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"cover_url": coverURL}, fiber.StatusOK, domain.MessageSuccessUploadCover)
}

func (h *mangaHandler) AddChapter(c *fiber.Ctx) error {
	req := new(domain.AddChapterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddChapter, err)
	}

	result, err := h.mangaService.AddChapter(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddChapter, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessAddChapter)
}

func (h *mangaHandler) GetChapters(c *fiber.Ctx) error {
	chapters, err := h.mangaService.GetChapters(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetChapters, err)
	}

	return presenters.SuccessResponse(c, chapters, fiber.StatusOK, domain.MessageSuccessGetChapters)
}

func (h *mangaHandler) GetChapterDetails(c *fiber.Ctx) error {
	result, err := h.mangaService.GetChapterByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetChapter, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetChapter)
}
