package entities

import (
	"time"

	"github.com/google/uuid"
)

type Manga struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title       string    `gorm:"index" json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Status      string    `json:"status"` // Ongoing, Completed, Hiatus
	IsPremium   bool      `json:"is_premium"`
	TokenPrice  int       `json:"token_price"` // price to unlock the whole title
	ViewCount   int64     `json:"view_count"`

	Chapters []*Chapter `gorm:"foreignKey:MangaID"`
	Timestamp
}

type Chapter struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MangaID    uuid.UUID  `gorm:"index" json:"manga_id"`
	Number     float64    `json:"number"`
	Title      string     `json:"title"`
	IsPremium  bool       `json:"is_premium"`
	TokenPrice int        `json:"token_price"`
	PageCount  int        `json:"page_count"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`

	Manga *Manga `gorm:"foreignKey:MangaID"`
	Timestamp
}
