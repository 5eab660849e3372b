package entities

import (
	"time"

	"github.com/google/uuid"
)

// Purchase is an append-only audit row, one per monetary or token event.
// Completed rows never change again except for the refund fields.
type Purchase struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `gorm:"index" json:"user_id"`
	PurchaseType  string    `json:"purchase_type"` // chapter, manga, subscription, donation
	ItemType      string    `json:"item_type"`     // Chapter, Manga, Subscription, Donation
	ItemID        uuid.UUID `gorm:"index" json:"item_id"`
	Amount        int       `json:"amount"`
	Currency      string    `json:"currency"`                              // tokens, idr
	PaymentMethod string    `json:"payment_method"`                        // tokens, midtrans
	TransactionID string    `gorm:"index" json:"transaction_id,omitempty"` // gateway order id
	Status        string    `json:"status"`                                // Pending, Completed, Failed, Refunded

	RefundedAt   *time.Time `json:"refunded_at,omitempty"`
	RefundReason string     `json:"refund_reason,omitempty"`

	Description string `json:"description"`
	Metadata    string `gorm:"type:jsonb" json:"metadata,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
