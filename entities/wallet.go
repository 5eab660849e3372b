package entities

import (
	"github.com/google/uuid"
)

type Wallet struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID               uuid.UUID  `gorm:"uniqueIndex" json:"user_id"`
	TokensBalance        int        `json:"tokens_balance"` // never negative
	CoinsBalance         int        `json:"coins_balance"`
	ActiveSubscriptionID *uuid.UUID `json:"active_subscription_id,omitempty"`

	User         *User                `gorm:"foreignKey:UserID"`
	Transactions []*WalletTransaction `gorm:"foreignKey:WalletID"`
	Timestamp
}

// WalletTransaction rows are append-only. The sum of signed amounts per
// currency must always equal the stored wallet balance.
type WalletTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	WalletID    uuid.UUID `gorm:"index" json:"wallet_id"`
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	Type        string    `json:"type"`     // purchase, refund, reward, debit, subscription
	Amount      int       `json:"amount"`   // signed, negative for spending
	Currency    string    `json:"currency"` // tokens, coins
	Description string    `json:"description"`
	ReferenceID string    `json:"reference_id,omitempty"` // Purchase or Subscription id
	Balance     int       `json:"balance"`                // balance of the currency after this entry

	Wallet *Wallet `gorm:"foreignKey:WalletID"`
	Timestamp
}
