package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetWallet        = "wallet retrieved successfully"
	MessageSuccessBuyTokens        = "token purchase initiated successfully"
	MessageSuccessGetTokenPackages = "token packages retrieved successfully"
	MessageSuccessGetWalletHistory = "wallet transaction history retrieved successfully"
	MessageSuccessRewardCoins      = "coins rewarded successfully"

	MessageFailedGetWallet        = "failed to retrieve wallet"
	MessageFailedBuyTokens        = "failed to purchase tokens"
	MessageFailedGetTokenPackages = "failed to retrieve token packages"
	MessageFailedGetWalletHistory = "failed to retrieve wallet transaction history"
	MessageFailedRewardCoins      = "failed to reward coins"

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInvalidTokenPackage = errors.New("invalid token package")
	ErrPaymentFailed       = errors.New("payment processing failed")
)

const (
	// Ledger entry types
	TransactionTypePurchase     = "purchase"
	TransactionTypeRefund       = "refund"
	TransactionTypeReward       = "reward"
	TransactionTypeDebit        = "debit"
	TransactionTypeSubscription = "subscription"

	// Coin rewards for reader activity
	REWARD_DAILY_LOGIN   = 5
	REWARD_CHAPTER_READ  = 1
	REWARD_FIRST_COMMENT = 10
)

type (
	WalletBalance struct {
		TokensBalance        int     `json:"tokens_balance"`
		CoinsBalance         int     `json:"coins_balance"`
		ActiveSubscriptionID *string `json:"active_subscription_id,omitempty"`
	}

	WalletTransaction struct {
		ID          string    `json:"id"`
		Type        string    `json:"type"`
		Amount      int       `json:"amount"`
		Currency    string    `json:"currency"`
		Description string    `json:"description"`
		ReferenceID string    `json:"reference_id,omitempty"`
		Balance     int       `json:"balance"`
		CreatedAt   time.Time `json:"created_at"`
	}

	TokenPackage struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Amount      int     `json:"amount"`
		Price       float64 `json:"price"`
		Currency    string  `json:"currency"`
		Description string  `json:"description,omitempty"`
		ImageURL    string  `json:"image_url,omitempty"`
		IsPopular   bool    `json:"is_popular"`
	}

	BuyTokensRequest struct {
		PackageID string `json:"package_id" validate:"required,uuid"`
		Email     string `json:"email" validate:"required,email"`
	}

	BuyTokensResponse struct {
		PurchaseID string `json:"purchase_id"`
		InvoiceURL string `json:"invoice_url"`
	}

	RewardCoinsRequest struct {
		UserID      string `json:"user_id" validate:"required,uuid"`
		Amount      int    `json:"amount" validate:"required,min=1"`
		Reason      string `json:"reason" validate:"required"`
		Description string `json:"description" validate:"omitempty"`
	}
)
