package subscription

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"MangaVerse-Backend/pkg/purchase"
	"MangaVerse-Backend/pkg/wallet"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	SubscriptionService interface {
		GetActiveSubscription(ctx context.Context, userID string) (*domain.Subscription, error)
		Subscribe(ctx context.Context, req domain.SubscribeRequest, userID string) (*domain.Subscription, error)
		Cancel(ctx context.Context, req domain.CancelSubscriptionRequest, userID string) (*domain.Subscription, error)
		RevokeSubscription(ctx context.Context, subscriptionID string, reason string) error
		GetPlans(ctx context.Context) []*domain.SubscriptionPlan
		GetBenefits(ctx context.Context, userID string) (*domain.SubscriptionBenefits, error)
		GetHistory(ctx context.Context, userID string, page, limit int) ([]*domain.Subscription, int64, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		walletService          wallet.WalletService
		purchaseRepository     purchase.PurchaseRepository
	}
)

func NewSubscriptionService(
	subscriptionRepository SubscriptionRepository,
	walletService wallet.WalletService,
	purchaseRepository purchase.PurchaseRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		walletService:          walletService,
		purchaseRepository:     purchaseRepository,
	}
}

// IsCurrentlyEntitled is the one definition of "has premium right now".
// Expiry happens passively, no worker flips IsActive, so the expiry time is
// always compared against the clock.
func IsCurrentlyEntitled(subscription *entities.Subscription, now time.Time) bool {
	return subscription != nil && subscription.IsActive && subscription.ExpiresAt.After(now)
}

func toSubscriptionDomain(s *entities.Subscription) *domain.Subscription {
	result := &domain.Subscription{
		ID:     s.ID.String(),
		UserID: s.UserID.String(),
		Tier:   s.Tier,
		Benefits: domain.SubscriptionBenefits{
			CanAddGifProfile:  s.CanAddGifProfile,
			CanAddBanner:      s.CanAddBanner,
			AutoReaderEnabled: s.AutoReaderEnabled,
			NoAds:             s.NoAds,
			AllChaptersFree:   s.AllChaptersFree,
		},
		StartDate:          s.StartDate,
		ExpiresAt:          s.ExpiresAt,
		IsActive:           s.IsActive,
		IsAutoRenew:        s.IsAutoRenew,
		Price:              s.Price,
		BillingCycle:       s.BillingCycle,
		PurchaseMethod:     s.PurchaseMethod,
		CancelledAt:        s.CancelledAt,
		CancellationReason: s.CancellationReason,
	}
	if s.PurchaseID != nil {
		result.PurchaseID = s.PurchaseID.String()
	}
	return result
}

// entitledSubscription fetches the user's subscription and re-checks it
// against the predicate, so the entitlement decision never rests on the
// repository filter alone.
func (s *subscriptionService) entitledSubscription(ctx context.Context, userID string) (*entities.Subscription, error) {
	subscription, err := s.subscriptionRepository.GetActiveByUser(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if !IsCurrentlyEntitled(subscription, time.Now()) {
		return nil, domain.ErrNoActiveSubscription
	}
	return subscription, nil
}

func (s *subscriptionService) GetActiveSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	subscription, err := s.entitledSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSubscription) {
			return nil, nil
		}
		return nil, err
	}
	return toSubscriptionDomain(subscription), nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, req domain.SubscribeRequest, userID string) (*domain.Subscription, error) {
	if req.PurchaseMethod != domain.PurchaseMethodCash && req.PurchaseMethod != domain.PurchaseMethodTokens {
		return nil, domain.ErrInvalidPurchaseMethod
	}

	existing, err := s.entitledSubscription(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNoActiveSubscription) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadySubscribed
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	subscriptionID := uuid.New()
	purchaseID := uuid.New()
	now := time.Now()
	expiresAt := now.AddDate(0, 1, 0)
	description := fmt.Sprintf("Premium subscription - %s", domain.BillingCycleMonthly)

	// Token payments are debited before anything is recorded so an
	// insufficient balance leaves no trace. Cash payments are recorded
	// optimistically, settlement is the gateway's concern.
	amount := domain.PRICE_PREMIUM_MONTHLY_IDR
	currency := domain.CurrencyIDR
	paymentMethod := domain.PaymentMethodMidtrans
	if req.PurchaseMethod == domain.PurchaseMethodTokens {
		amount = domain.PRICE_PREMIUM_MONTHLY_TOKENS
		currency = domain.CurrencyTokens
		paymentMethod = domain.PaymentMethodTokenBalance

		if _, err := s.walletService.Debit(
			ctx, userID, amount,
			domain.CurrencyTokens, domain.TransactionTypeSubscription,
			description, purchaseID.String(),
		); err != nil {
			return nil, err
		}
	}

	purchaseRow := &entities.Purchase{
		ID:            purchaseID,
		UserID:        userUUID,
		PurchaseType:  domain.PurchaseTypeSubscription,
		ItemType:      domain.ItemKindSubscription,
		ItemID:        subscriptionID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: paymentMethod,
		Status:        domain.PurchaseStatusCompleted,
		Description:   description,
	}
	if err := s.purchaseRepository.CreatePurchase(ctx, purchaseRow); err != nil {
		return nil, err
	}

	subscription := &entities.Subscription{
		ID:                subscriptionID,
		UserID:            userUUID,
		Tier:              domain.TierPremium,
		CanAddGifProfile:  true,
		CanAddBanner:      true,
		AutoReaderEnabled: true,
		NoAds:             true,
		AllChaptersFree:   true,
		StartDate:         now,
		ExpiresAt:         expiresAt,
		IsActive:          true,
		IsAutoRenew:       true,
		Price:             amount,
		BillingCycle:      domain.BillingCycleMonthly,
		PurchaseMethod:    req.PurchaseMethod,
		PurchaseID:        &purchaseID,
	}
	if err := s.subscriptionRepository.CreateSubscription(ctx, subscription); err != nil {
		return nil, err
	}

	if err := s.walletService.LinkActiveSubscription(ctx, userID, &subscriptionID); err != nil {
		return nil, err
	}

	return toSubscriptionDomain(subscription), nil
}

// Cancel stops renewal without revoking the remaining paid days: the
// subscription stays entitled until ExpiresAt. IsActive=false is reserved
// for refund revocation.
func (s *subscriptionService) Cancel(ctx context.Context, req domain.CancelSubscriptionRequest, userID string) (*domain.Subscription, error) {
	subscription, err := s.entitledSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	subscription.CancelledAt = &now
	subscription.CancellationReason = req.Reason
	subscription.IsAutoRenew = false

	if err := s.subscriptionRepository.UpdateSubscription(ctx, subscription); err != nil {
		return nil, err
	}

	return toSubscriptionDomain(subscription), nil
}

func (s *subscriptionService) RevokeSubscription(ctx context.Context, subscriptionID string, reason string) error {
	subscription, err := s.subscriptionRepository.GetSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return err
	}

	now := time.Now()
	subscription.IsActive = false
	subscription.IsAutoRenew = false
	subscription.CancelledAt = &now
	subscription.CancellationReason = reason

	if err := s.subscriptionRepository.UpdateSubscription(ctx, subscription); err != nil {
		return err
	}

	return s.walletService.LinkActiveSubscription(ctx, subscription.UserID.String(), nil)
}

func (s *subscriptionService) GetPlans(ctx context.Context) []*domain.SubscriptionPlan {
	return []*domain.SubscriptionPlan{
		{
			ID:       "free",
			Name:     "Free",
			Price:    0,
			Features: []string{"Read free chapters", "See ads"},
		},
		{
			ID:       domain.TierPremium,
			Name:     "Premium",
			Price:    domain.PRICE_PREMIUM_MONTHLY_TOKENS,
			Features: []string{"No ads", "All chapters", "GIF profile", "Profile banner", "Auto reader"},
		},
	}
}

func (s *subscriptionService) GetBenefits(ctx context.Context, userID string) (*domain.SubscriptionBenefits, error) {
	subscription, err := s.entitledSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSubscription) {
			return &domain.SubscriptionBenefits{}, nil
		}
		return nil, err
	}

	return &domain.SubscriptionBenefits{
		CanAddGifProfile:  subscription.CanAddGifProfile,
		CanAddBanner:      subscription.CanAddBanner,
		AutoReaderEnabled: subscription.AutoReaderEnabled,
		NoAds:             subscription.NoAds,
		AllChaptersFree:   subscription.AllChaptersFree,
	}, nil
}

func (s *subscriptionService) GetHistory(ctx context.Context, userID string, page, limit int) ([]*domain.Subscription, int64, error) {
	subscriptions, count, err := s.subscriptionRepository.GetUserSubscriptions(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Subscription, 0, len(subscriptions))
	for _, sub := range subscriptions {
		result = append(result, toSubscriptionDomain(sub))
	}

	return result, count, nil
}
