package entities

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"index:idx_subscriptions_user_active" json:"user_id"`
	Tier   string    `json:"tier"` // premium

	// Benefit flags granted by the tier
	CanAddGifProfile  bool `json:"can_add_gif_profile"`
	CanAddBanner      bool `json:"can_add_banner"`
	AutoReaderEnabled bool `json:"auto_reader_enabled"`
	NoAds             bool `json:"no_ads"`
	AllChaptersFree   bool `json:"all_chapters_free"`

	StartDate      time.Time  `json:"start_date"`
	ExpiresAt      time.Time  `json:"expires_at"`
	IsActive       bool       `gorm:"index:idx_subscriptions_user_active" json:"is_active"`
	IsAutoRenew    bool       `json:"is_auto_renew"`
	Price          int        `json:"price"`           // one billing cycle, in the purchase currency
	BillingCycle   string     `json:"billing_cycle"`   // monthly
	PurchaseMethod string     `json:"purchase_method"` // cash, tokens
	PurchaseID     *uuid.UUID `json:"purchase_id,omitempty"`

	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`

	User     *User     `gorm:"foreignKey:UserID"`
	Purchase *Purchase `gorm:"foreignKey:PurchaseID"`
	Timestamp
}
