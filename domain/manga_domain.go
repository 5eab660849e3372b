package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateManga = "manga created successfully"
	MessageSuccessGetMangas   = "manga list retrieved successfully"
	MessageSuccessGetManga    = "manga retrieved successfully"
	MessageSuccessUpdateManga = "manga updated successfully"
	MessageSuccessUploadCover = "cover uploaded successfully"
	MessageSuccessAddChapter  = "chapter added successfully"
	MessageSuccessGetChapters = "chapters retrieved successfully"
	MessageSuccessGetChapter  = "chapter retrieved successfully"

	MessageFailedCreateManga = "failed to create manga"
	MessageFailedGetMangas   = "failed to retrieve manga list"
	MessageFailedGetManga    = "failed to retrieve manga"
	MessageFailedUpdateManga = "failed to update manga"
	MessageFailedUploadCover = "failed to upload cover"
	MessageFailedAddChapter  = "failed to add chapter"
	MessageFailedGetChapters = "failed to retrieve chapters"
	MessageFailedGetChapter  = "failed to retrieve chapter"

	ErrMangaNotFound   = errors.New("manga not found")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrInvalidStatus   = errors.New("invalid manga status")
)

const (
	MangaStatusOngoing   = "Ongoing"
	MangaStatusCompleted = "Completed"
	MangaStatusHiatus    = "Hiatus"
)

type (
	CreateMangaRequest struct {
		Title       string `json:"title" validate:"required,max=255"`
		Author      string `json:"author" validate:"required,max=255"`
		Description string `json:"description" validate:"omitempty"`
		Status      string `json:"status" validate:"required,oneof=Ongoing Completed Hiatus"`
		IsPremium   bool   `json:"is_premium"`
		TokenPrice  int    `json:"token_price" validate:"omitempty,min=0"`
	}

	UpdateMangaRequest struct {
		Title       string `json:"title" validate:"omitempty,max=255"`
		Author      string `json:"author" validate:"omitempty,max=255"`
		Description string `json:"description" validate:"omitempty"`
		Status      string `json:"status" validate:"omitempty,oneof=Ongoing Completed Hiatus"`
		IsPremium   *bool  `json:"is_premium"`
		TokenPrice  *int   `json:"token_price" validate:"omitempty,min=0"`
	}

	UploadCoverRequest struct {
		MangaID string                `json:"manga_id" form:"manga_id" validate:"required,uuid"`
		Cover   *multipart.FileHeader `json:"cover" form:"cover"`
	}

	AddChapterRequest struct {
		MangaID    string  `json:"manga_id" validate:"required,uuid"`
		Number     float64 `json:"number" validate:"required,min=0"`
		Title      string  `json:"title" validate:"required,max=255"`
		IsPremium  bool    `json:"is_premium"`
		TokenPrice int     `json:"token_price" validate:"omitempty,min=0"`
		PageCount  int     `json:"page_count" validate:"omitempty,min=0"`
	}

	Manga struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Author      string    `json:"author"`
		Description string    `json:"description"`
		CoverURL    string    `json:"cover_url,omitempty"`
		Status      string    `json:"status"`
		IsPremium   bool      `json:"is_premium"`
		TokenPrice  int       `json:"token_price"`
		ViewCount   int64     `json:"view_count"`
		CreatedAt   time.Time `json:"created_at"`
	}

	Chapter struct {
		ID         string     `json:"id"`
		MangaID    string     `json:"manga_id"`
		Number     float64    `json:"number"`
		Title      string     `json:"title"`
		IsPremium  bool       `json:"is_premium"`
		TokenPrice int        `json:"token_price"`
		PageCount  int        `json:"page_count"`
		ReleasedAt *time.Time `json:"released_at,omitempty"`
	}
)
