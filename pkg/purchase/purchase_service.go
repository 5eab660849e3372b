package purchase

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"MangaVerse-Backend/pkg/manga"
	"MangaVerse-Backend/pkg/wallet"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubscriptionRevoker revokes a subscription when the purchase that paid for
// it is refunded. Implemented by the subscription service and injected at
// wiring time to keep the dependency one-directional.
type SubscriptionRevoker interface {
	RevokeSubscription(ctx context.Context, subscriptionID string, reason string) error
}

type (
	PurchaseService interface {
		BuyChapter(ctx context.Context, req domain.BuyChapterRequest, userID string) (*domain.Purchase, error)
		BuyManga(ctx context.Context, req domain.BuyMangaRequest, userID string) (*domain.Purchase, error)
		RecordPurchase(ctx context.Context, params domain.RecordPurchaseParams) (string, error)
		MarkRefunded(ctx context.Context, req domain.RefundPurchaseRequest) (*domain.Purchase, error)
		GetPurchaseHistory(ctx context.Context, userID string, page, limit int) ([]*domain.Purchase, int64, error)
		MakeDonation(ctx context.Context, req domain.MakeDonationRequest, userID string) (*domain.Purchase, error)
		GetDonationOptions(ctx context.Context) []*domain.DonationOption
	}

	purchaseService struct {
		purchaseRepository PurchaseRepository
		walletService      wallet.WalletService
		mangaRepository    manga.MangaRepository
		revoker            SubscriptionRevoker
	}
)

func NewPurchaseService(
	purchaseRepository PurchaseRepository,
	walletService wallet.WalletService,
	mangaRepository manga.MangaRepository,
	revoker SubscriptionRevoker,
) PurchaseService {
	return &purchaseService{
		purchaseRepository: purchaseRepository,
		walletService:      walletService,
		mangaRepository:    mangaRepository,
		revoker:            revoker,
	}
}

func toPurchaseDomain(p *entities.Purchase) *domain.Purchase {
	return &domain.Purchase{
		ID:           p.ID.String(),
		UserID:       p.UserID.String(),
		PurchaseType: p.PurchaseType,
		Item: domain.PurchaseItem{
			Kind: p.ItemType,
			ID:   p.ItemID.String(),
		},
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		RefundedAt:    p.RefundedAt,
		RefundReason:  p.RefundReason,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
	}
}

func (s *purchaseService) BuyChapter(ctx context.Context, req domain.BuyChapterRequest, userID string) (*domain.Purchase, error) {
	chapter, err := s.mangaRepository.GetChapterByID(ctx, req.ChapterID)
	if err != nil {
		return nil, err
	}

	if !chapter.IsPremium || chapter.TokenPrice <= 0 {
		return nil, domain.ErrContentNotPurchasable
	}

	// Dedup before touching the wallet
	owned, err := s.purchaseRepository.HasCompletedPurchase(ctx, userID, domain.ItemKindChapter, req.ChapterID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, domain.ErrAlreadyPurchased
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	purchaseID := uuid.New()
	description := fmt.Sprintf("Chapter %g: %s", chapter.Number, chapter.Title)

	if _, err := s.walletService.Debit(
		ctx, userID, chapter.TokenPrice,
		domain.CurrencyTokens, domain.TransactionTypeDebit,
		description, purchaseID.String(),
	); err != nil {
		return nil, err
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"manga_id":       chapter.MangaID.String(),
		"chapter_number": chapter.Number,
	})

	purchase := &entities.Purchase{
		ID:            purchaseID,
		UserID:        userUUID,
		PurchaseType:  domain.PurchaseTypeChapter,
		ItemType:      domain.ItemKindChapter,
		ItemID:        chapter.ID,
		Amount:        chapter.TokenPrice,
		Currency:      domain.CurrencyTokens,
		PaymentMethod: domain.PaymentMethodTokenBalance,
		Status:        domain.PurchaseStatusCompleted,
		Description:   description,
		Metadata:      string(metadata),
	}

	if err := s.purchaseRepository.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	return toPurchaseDomain(purchase), nil
}

func (s *purchaseService) BuyManga(ctx context.Context, req domain.BuyMangaRequest, userID string) (*domain.Purchase, error) {
	mangaEntity, err := s.mangaRepository.GetMangaByID(ctx, req.MangaID)
	if err != nil {
		return nil, err
	}

	if !mangaEntity.IsPremium || mangaEntity.TokenPrice <= 0 {
		return nil, domain.ErrContentNotPurchasable
	}

	owned, err := s.purchaseRepository.HasCompletedPurchase(ctx, userID, domain.ItemKindManga, req.MangaID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, domain.ErrAlreadyPurchased
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	premiumChapters, err := s.mangaRepository.GetPremiumChaptersByManga(ctx, req.MangaID)
	if err != nil {
		return nil, err
	}

	purchaseID := uuid.New()
	description := fmt.Sprintf("Manga: %s", mangaEntity.Title)

	if _, err := s.walletService.Debit(
		ctx, userID, mangaEntity.TokenPrice,
		domain.CurrencyTokens, domain.TransactionTypeDebit,
		description, purchaseID.String(),
	); err != nil {
		return nil, err
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"manga_title":   mangaEntity.Title,
		"chapter_count": len(premiumChapters),
	})

	purchase := &entities.Purchase{
		ID:            purchaseID,
		UserID:        userUUID,
		PurchaseType:  domain.PurchaseTypeManga,
		ItemType:      domain.ItemKindManga,
		ItemID:        mangaEntity.ID,
		Amount:        mangaEntity.TokenPrice,
		Currency:      domain.CurrencyTokens,
		PaymentMethod: domain.PaymentMethodTokenBalance,
		Status:        domain.PurchaseStatusCompleted,
		Description:   description,
		Metadata:      string(metadata),
	}

	if err := s.purchaseRepository.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	return toPurchaseDomain(purchase), nil
}

func (s *purchaseService) RecordPurchase(ctx context.Context, params domain.RecordPurchaseParams) (string, error) {
	userUUID, err := uuid.Parse(params.UserID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	itemUUID, err := uuid.Parse(params.Item.ID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	purchase := &entities.Purchase{
		ID:            uuid.New(),
		UserID:        userUUID,
		PurchaseType:  params.PurchaseType,
		ItemType:      params.Item.Kind,
		ItemID:        itemUUID,
		Amount:        params.Amount,
		Currency:      params.Currency,
		PaymentMethod: params.PaymentMethod,
		TransactionID: params.TransactionID,
		Status:        params.Status,
		Description:   params.Description,
		Metadata:      params.Metadata,
	}

	if err := s.purchaseRepository.CreatePurchase(ctx, purchase); err != nil {
		return "", err
	}

	return purchase.ID.String(), nil
}

// MarkRefunded transitions a completed purchase to refunded. Token payments
// are credited back to the wallet in the same flow, and a refunded
// subscription purchase revokes the subscription itself. Cash settlements
// are reversed by the payment gateway, not here.
//
// The conditional status transition runs first so only one of two
// concurrent refund calls can pay out. A failure after the claim puts the
// row back to completed, and the ledger reference keyed on the purchase id
// keeps the retry from crediting twice.
func (s *purchaseService) MarkRefunded(ctx context.Context, req domain.RefundPurchaseRequest) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepository.GetPurchaseByID(ctx, req.PurchaseID)
	if err != nil {
		return nil, err
	}

	if purchase.Status != domain.PurchaseStatusCompleted {
		return nil, domain.ErrInvalidPurchaseState
	}

	refundedAt := time.Now()
	if err := s.purchaseRepository.MarkRefunded(ctx, req.PurchaseID, refundedAt, req.Reason); err != nil {
		return nil, err
	}

	if purchase.PaymentMethod == domain.PaymentMethodTokenBalance && purchase.Currency == domain.CurrencyTokens {
		userID := purchase.UserID.String()
		credited, err := s.walletService.HasLedgerEntry(ctx, userID, domain.TransactionTypeRefund, purchase.ID.String())
		if err != nil {
			return nil, s.reinstate(ctx, req.PurchaseID, err)
		}
		if !credited {
			description := fmt.Sprintf("Refund: %s", purchase.Description)
			if _, err := s.walletService.Credit(
				ctx, userID, purchase.Amount,
				domain.CurrencyTokens, domain.TransactionTypeRefund,
				description, purchase.ID.String(),
			); err != nil {
				return nil, s.reinstate(ctx, req.PurchaseID, err)
			}
		}
	}

	if purchase.PurchaseType == domain.PurchaseTypeSubscription {
		if err := s.revoker.RevokeSubscription(ctx, purchase.ItemID.String(), req.Reason); err != nil {
			return nil, s.reinstate(ctx, req.PurchaseID, err)
		}
	}

	purchase.Status = domain.PurchaseStatusRefunded
	purchase.RefundedAt = &refundedAt
	purchase.RefundReason = req.Reason

	return toPurchaseDomain(purchase), nil
}

// reinstate returns a claimed row to completed so a failed refund can be
// retried, then reports the failure that interrupted it.
func (s *purchaseService) reinstate(ctx context.Context, purchaseID string, cause error) error {
	if err := s.purchaseRepository.ReinstateCompleted(ctx, purchaseID); err != nil {
		return err
	}
	return cause
}

func (s *purchaseService) GetPurchaseHistory(ctx context.Context, userID string, page, limit int) ([]*domain.Purchase, int64, error) {
	purchases, count, err := s.purchaseRepository.GetUserPurchases(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Purchase, 0, len(purchases))
	for _, p := range purchases {
		result = append(result, toPurchaseDomain(p))
	}

	return result, count, nil
}

func (s *purchaseService) MakeDonation(ctx context.Context, req domain.MakeDonationRequest, userID string) (*domain.Purchase, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidDonation
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	purchaseID := uuid.New()
	description := fmt.Sprintf("Donation of %d tokens", req.Amount)
	if req.Message != "" {
		description += ": " + req.Message
	}

	if _, err := s.walletService.Debit(
		ctx, userID, req.Amount,
		domain.CurrencyTokens, domain.TransactionTypeDebit,
		description, purchaseID.String(),
	); err != nil {
		return nil, err
	}

	purchase := &entities.Purchase{
		ID:            purchaseID,
		UserID:        userUUID,
		PurchaseType:  domain.PurchaseTypeDonation,
		ItemType:      domain.ItemKindDonation,
		ItemID:        purchaseID, // a donation references its own audit row
		Amount:        req.Amount,
		Currency:      domain.CurrencyTokens,
		PaymentMethod: domain.PaymentMethodTokenBalance,
		Status:        domain.PurchaseStatusCompleted,
		Description:   description,
	}

	if err := s.purchaseRepository.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	return toPurchaseDomain(purchase), nil
}

func (s *purchaseService) GetDonationOptions(ctx context.Context) []*domain.DonationOption {
	return []*domain.DonationOption{
		{Amount: 10, Label: "Coffee"},
		{Amount: 50, Label: "Supporter"},
		{Amount: 130, Label: "Superfan"},
		{Amount: 500, Label: "Patron"},
	}
}
