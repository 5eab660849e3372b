package entities

import (
	"github.com/google/uuid"
)

// PaymentTransaction links a midtrans order to the token package it pays
// for. The wallet is only credited once the gateway reports settlement.
type PaymentTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderID       string    `gorm:"uniqueIndex" json:"order_id"`
	UserID        uuid.UUID `gorm:"index" json:"user_id"`
	PackageID     uuid.UUID `json:"package_id"`
	GrossAmount   int64     `json:"gross_amount"`
	TokensGranted int       `json:"tokens_granted"`
	Status        string    `json:"status"` // pending, settlement, failed

	User         *User         `gorm:"foreignKey:UserID"`
	TokenPackage *TokenPackage `gorm:"foreignKey:PackageID"`
	Timestamp
}
