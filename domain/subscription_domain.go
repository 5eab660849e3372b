package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetSubscription     = "subscription retrieved successfully"
	MessageSuccessSubscribe           = "subscribed successfully"
	MessageSuccessCancelSubscription  = "subscription cancelled successfully"
	MessageSuccessGetPlans            = "subscription plans retrieved successfully"
	MessageSuccessGetBenefits         = "subscription benefits retrieved successfully"
	MessageSuccessGetSubscriptionLogs = "subscription history retrieved successfully"

	MessageFailedGetSubscription     = "failed to retrieve subscription"
	MessageFailedSubscribe           = "failed to subscribe"
	MessageFailedCancelSubscription  = "failed to cancel subscription"
	MessageFailedGetPlans            = "failed to retrieve subscription plans"
	MessageFailedGetBenefits         = "failed to retrieve subscription benefits"
	MessageFailedGetSubscriptionLogs = "failed to retrieve subscription history"

	ErrAlreadySubscribed     = errors.New("an active subscription already exists")
	ErrNoActiveSubscription  = errors.New("no active subscription")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrInvalidPurchaseMethod = errors.New("invalid purchase method")
)

const (
	TierPremium = "premium"

	BillingCycleMonthly = "monthly"

	PurchaseMethodCash   = "cash"
	PurchaseMethodTokens = "tokens"

	// Price of one monthly premium cycle per purchase method
	PRICE_PREMIUM_MONTHLY_TOKENS = 130
	PRICE_PREMIUM_MONTHLY_IDR    = 75000
)

type (
	SubscribeRequest struct {
		PurchaseMethod string `json:"purchase_method" validate:"required,oneof=cash tokens"`
	}

	CancelSubscriptionRequest struct {
		Reason string `json:"reason" validate:"omitempty,max=500"`
	}

	SubscriptionBenefits struct {
		CanAddGifProfile  bool `json:"can_add_gif_profile"`
		CanAddBanner      bool `json:"can_add_banner"`
		AutoReaderEnabled bool `json:"auto_reader_enabled"`
		NoAds             bool `json:"no_ads"`
		AllChaptersFree   bool `json:"all_chapters_free"`
	}

	Subscription struct {
		ID                 string               `json:"id"`
		UserID             string               `json:"user_id"`
		Tier               string               `json:"tier"`
		Benefits           SubscriptionBenefits `json:"benefits"`
		StartDate          time.Time            `json:"start_date"`
		ExpiresAt          time.Time            `json:"expires_at"`
		IsActive           bool                 `json:"is_active"`
		IsAutoRenew        bool                 `json:"is_auto_renew"`
		Price              int                  `json:"price"`
		BillingCycle       string               `json:"billing_cycle"`
		PurchaseMethod     string               `json:"purchase_method"`
		PurchaseID         string               `json:"purchase_id,omitempty"`
		CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
		CancellationReason string               `json:"cancellation_reason,omitempty"`
	}

	SubscriptionPlan struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Price    int      `json:"price"`
		Features []string `json:"features"`
	}
)
