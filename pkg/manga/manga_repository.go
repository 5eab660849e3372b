package manga

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	MangaRepository interface {
		CreateManga(ctx context.Context, manga *entities.Manga) error
		GetMangas(ctx context.Context, search string, page, limit int) ([]*entities.Manga, int64, error)
		GetMangaByID(ctx context.Context, id string) (*entities.Manga, error)
		UpdateManga(ctx context.Context, manga *entities.Manga) error
		IncrementViewCount(ctx context.Context, id string) error

		CreateChapter(ctx context.Context, chapter *entities.Chapter) error
		GetChaptersByManga(ctx context.Context, mangaID string) ([]*entities.Chapter, error)
		GetChapterByID(ctx context.Context, id string) (*entities.Chapter, error)
		GetPremiumChaptersByManga(ctx context.Context, mangaID string) ([]*entities.Chapter, error)
	}

	mangaRepository struct {
		db *gorm.DB
	}
)

func NewMangaRepository(db *gorm.DB) MangaRepository {
	return &mangaRepository{
		db: db,
	}
}

func (r *mangaRepository) CreateManga(ctx context.Context, manga *entities.Manga) error {
	return r.db.WithContext(ctx).Create(manga).Error
}

func (r *mangaRepository) GetMangas(ctx context.Context, search string, page, limit int) ([]*entities.Manga, int64, error) {
	var mangas []*entities.Manga
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Manga{})
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&mangas).Error; err != nil {
		return nil, 0, err
	}

	return mangas, count, nil
}

func (r *mangaRepository) GetMangaByID(ctx context.Context, id string) (*entities.Manga, error) {
	var manga entities.Manga
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&manga).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMangaNotFound
		}
		return nil, err
	}
	return &manga, nil
}

func (r *mangaRepository) UpdateManga(ctx context.Context, manga *entities.Manga) error {
	return r.db.WithContext(ctx).Save(manga).Error
}

func (r *mangaRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Manga{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *mangaRepository) CreateChapter(ctx context.Context, chapter *entities.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

func (r *mangaRepository) GetChaptersByManga(ctx context.Context, mangaID string) ([]*entities.Chapter, error) {
	var chapters []*entities.Chapter
	if err := r.db.WithContext(ctx).
		Where("manga_id = ?", mangaID).
		Order("number ASC").
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *mangaRepository) GetChapterByID(ctx context.Context, id string) (*entities.Chapter, error) {
	var chapter entities.Chapter
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChapterNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

func (r *mangaRepository) GetPremiumChaptersByManga(ctx context.Context, mangaID string) ([]*entities.Chapter, error) {
	var chapters []*entities.Chapter
	if err := r.db.WithContext(ctx).
		Where("manga_id = ? AND is_premium = ?", mangaID, true).
		Order("number ASC").
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}
