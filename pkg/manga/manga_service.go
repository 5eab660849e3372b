package manga

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"MangaVerse-Backend/internal/utils/storage"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	MangaService interface {
		CreateManga(ctx context.Context, req domain.CreateMangaRequest) (*domain.Manga, error)
		GetMangas(ctx context.Context, search string, page, limit int) ([]*domain.Manga, int64, error)
		GetMangaByID(ctx context.Context, id string) (*domain.Manga, error)
		UpdateManga(ctx context.Context, id string, req domain.UpdateMangaRequest) (*domain.Manga, error)
		UploadCover(ctx context.Context, req domain.UploadCoverRequest) (string, error)
		AddChapter(ctx context.Context, req domain.AddChapterRequest) (*domain.Chapter, error)
		GetChapters(ctx context.Context, mangaID string) ([]*domain.Chapter, error)
		GetChapterByID(ctx context.Context, id string) (*domain.Chapter, error)
	}

	mangaService struct {
		mangaRepository MangaRepository
		s3              storage.AwsS3
	}
)

func NewMangaService(mangaRepository MangaRepository, s3 storage.AwsS3) MangaService {
	return &mangaService{
		mangaRepository: mangaRepository,
		s3:              s3,
	}
}

func toMangaDomain(m *entities.Manga) *domain.Manga {
	return &domain.Manga{
		ID:          m.ID.String(),
		Title:       m.Title,
		Author:      m.Author,
		Description: m.Description,
		CoverURL:    m.CoverURL,
		Status:      m.Status,
		IsPremium:   m.IsPremium,
		TokenPrice:  m.TokenPrice,
		ViewCount:   m.ViewCount,
		CreatedAt:   m.CreatedAt,
	}
}

func toChapterDomain(c *entities.Chapter) *domain.Chapter {
	return &domain.Chapter{
		ID:         c.ID.String(),
		MangaID:    c.MangaID.String(),
		Number:     c.Number,
		Title:      c.Title,
		IsPremium:  c.IsPremium,
		TokenPrice: c.TokenPrice,
		PageCount:  c.PageCount,
		ReleasedAt: c.ReleasedAt,
	}
}

func (s *mangaService) CreateManga(ctx context.Context, req domain.CreateMangaRequest) (*domain.Manga, error) {
	manga := &entities.Manga{
		ID:          uuid.New(),
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Status:      req.Status,
		IsPremium:   req.IsPremium,
		TokenPrice:  req.TokenPrice,
	}

	if err := s.mangaRepository.CreateManga(ctx, manga); err != nil {
		return nil, err
	}

	return toMangaDomain(manga), nil
}

func (s *mangaService) GetMangas(ctx context.Context, search string, page, limit int) ([]*domain.Manga, int64, error) {
	mangas, count, err := s.mangaRepository.GetMangas(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Manga, 0, len(mangas))
	for _, m := range mangas {
		result = append(result, toMangaDomain(m))
	}

	return result, count, nil
}

func (s *mangaService) GetMangaByID(ctx context.Context, id string) (*domain.Manga, error) {
	manga, err := s.mangaRepository.GetMangaByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Best effort, a lost view does not matter
	_ = s.mangaRepository.IncrementViewCount(ctx, id)

	return toMangaDomain(manga), nil
}

func (s *mangaService) UpdateManga(ctx context.Context, id string, req domain.UpdateMangaRequest) (*domain.Manga, error) {
	manga, err := s.mangaRepository.GetMangaByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		manga.Title = req.Title
	}
	if req.Author != "" {
		manga.Author = req.Author
	}
	if req.Description != "" {
		manga.Description = req.Description
	}
	if req.Status != "" {
		manga.Status = req.Status
	}
	if req.IsPremium != nil {
		manga.IsPremium = *req.IsPremium
	}
	if req.TokenPrice != nil {
		manga.TokenPrice = *req.TokenPrice
	}

	if err := s.mangaRepository.UpdateManga(ctx, manga); err != nil {
		return nil, err
	}

	return toMangaDomain(manga), nil
}

func (s *mangaService) UploadCover(ctx context.Context, req domain.UploadCoverRequest) (string, error) {
	manga, err := s.mangaRepository.GetMangaByID(ctx, req.MangaID)
	if err != nil {
		return "", err
	}

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("cover-%s", manga.ID.String()),
		req.Cover,
		"covers",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}

	manga.CoverURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.mangaRepository.UpdateManga(ctx, manga); err != nil {
		return "", err
	}

	return manga.CoverURL, nil
}

func (s *mangaService) AddChapter(ctx context.Context, req domain.AddChapterRequest) (*domain.Chapter, error) {
	manga, err := s.mangaRepository.GetMangaByID(ctx, req.MangaID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	chapter := &entities.Chapter{
		ID:         uuid.New(),
		MangaID:    manga.ID,
		Number:     req.Number,
		Title:      req.Title,
		IsPremium:  req.IsPremium,
		TokenPrice: req.TokenPrice,
		PageCount:  req.PageCount,
		ReleasedAt: &now,
	}

	if err := s.mangaRepository.CreateChapter(ctx, chapter); err != nil {
		return nil, err
	}

	return toChapterDomain(chapter), nil
}

func (s *mangaService) GetChapters(ctx context.Context, mangaID string) ([]*domain.Chapter, error) {
	if _, err := s.mangaRepository.GetMangaByID(ctx, mangaID); err != nil {
		return nil, err
	}

	chapters, err := s.mangaRepository.GetChaptersByManga(ctx, mangaID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Chapter, 0, len(chapters))
	for _, c := range chapters {
		result = append(result, toChapterDomain(c))
	}

	return result, nil
}

func (s *mangaService) GetChapterByID(ctx context.Context, id string) (*domain.Chapter, error) {
	chapter, err := s.mangaRepository.GetChapterByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toChapterDomain(chapter), nil
}
