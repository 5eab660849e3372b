package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessBuyChapter         = "chapter purchased successfully"
	MessageSuccessBuyManga           = "manga purchased successfully"
	MessageSuccessGetPurchases       = "purchases retrieved successfully"
	MessageSuccessGetPurchaseHistory = "purchase history retrieved successfully"
	MessageSuccessRefundPurchase     = "purchase refunded successfully"
	MessageSuccessMakeDonation       = "donation made successfully"
	MessageSuccessGetDonationOptions = "donation options retrieved successfully"

	MessageFailedBuyChapter         = "failed to purchase chapter"
	MessageFailedBuyManga           = "failed to purchase manga"
	MessageFailedGetPurchases       = "failed to retrieve purchases"
	MessageFailedGetPurchaseHistory = "failed to retrieve purchase history"
	MessageFailedRefundPurchase     = "failed to refund purchase"
	MessageFailedMakeDonation       = "failed to make donation"

	ErrPurchaseNotFound      = errors.New("purchase not found")
	ErrInvalidPurchaseState  = errors.New("purchase is not in a refundable state")
	ErrAlreadyPurchased      = errors.New("item already purchased")
	ErrInvalidDonation       = errors.New("invalid donation amount")
	ErrContentNotPurchasable = errors.New("content does not require purchase")
)

const (
	PurchaseTypeChapter      = "chapter"
	PurchaseTypeManga        = "manga"
	PurchaseTypeSubscription = "subscription"
	PurchaseTypeDonation     = "donation"

	PurchaseStatusPending   = "Pending"
	PurchaseStatusCompleted = "Completed"
	PurchaseStatusFailed    = "Failed"
	PurchaseStatusRefunded  = "Refunded"

	PaymentMethodTokenBalance = "tokens"
	PaymentMethodMidtrans     = "midtrans"
)

// Item kinds for the tagged purchase reference. The consuming code resolves
// ItemID against exactly one table depending on Kind.
const (
	ItemKindChapter      = "Chapter"
	ItemKindManga        = "Manga"
	ItemKindSubscription = "Subscription"
	ItemKindDonation     = "Donation"
)

type (
	// PurchaseItem is the tagged reference carried by every purchase row.
	PurchaseItem struct {
		Kind string `json:"kind"`
		ID   string `json:"id"`
	}

	BuyChapterRequest struct {
		ChapterID string `json:"chapter_id" validate:"required,uuid"`
	}

	BuyMangaRequest struct {
		MangaID string `json:"manga_id" validate:"required,uuid"`
	}

	RefundPurchaseRequest struct {
		PurchaseID string `json:"purchase_id" validate:"required,uuid"`
		Reason     string `json:"reason" validate:"required,max=500"`
	}

	MakeDonationRequest struct {
		Amount  int    `json:"amount" validate:"required,min=1"`
		Message string `json:"message" validate:"omitempty,max=500"`
	}

	DonationOption struct {
		Amount int    `json:"amount"`
		Label  string `json:"label"`
	}

	Purchase struct {
		ID            string       `json:"id"`
		UserID        string       `json:"user_id"`
		PurchaseType  string       `json:"purchase_type"`
		Item          PurchaseItem `json:"item"`
		Amount        int          `json:"amount"`
		Currency      string       `json:"currency"`
		PaymentMethod string       `json:"payment_method"`
		TransactionID string       `json:"transaction_id,omitempty"`
		Status        string       `json:"status"`
		RefundedAt    *time.Time   `json:"refunded_at,omitempty"`
		RefundReason  string       `json:"refund_reason,omitempty"`
		Description   string       `json:"description"`
		CreatedAt     time.Time    `json:"created_at"`
	}

	RecordPurchaseParams struct {
		UserID        string
		PurchaseType  string
		Item          PurchaseItem
		Amount        int
		Currency      string
		PaymentMethod string
		TransactionID string
		Status        string
		Description   string
		Metadata      string
	}
)
