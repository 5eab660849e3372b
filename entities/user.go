package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username   string    `gorm:"uniqueIndex" json:"username"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Password   string    `json:"-"`
	Role       string    `gorm:"index" json:"role"` // user, mod, admin
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsVerified bool      `json:"is_verified"`

	IsBanned  bool       `json:"is_banned"`
	BannedAt  *time.Time `json:"banned_at,omitempty"`
	BanReason string     `json:"ban_reason,omitempty"`

	Wallet        *Wallet         `gorm:"foreignKey:UserID"`
	Subscriptions []*Subscription `gorm:"foreignKey:UserID"`
	Purchases     []*Purchase     `gorm:"foreignKey:UserID"`
	Timestamp
}
