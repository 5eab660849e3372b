package entities

import (
	"github.com/google/uuid"
)

type TokenPackage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `json:"name"`
	Amount      int       `json:"amount"` // tokens credited on settlement
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsPopular   bool      `json:"is_popular"`
	IsActive    bool      `json:"is_active"`

	Timestamp
}
