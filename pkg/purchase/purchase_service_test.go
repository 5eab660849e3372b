package purchase

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"MangaVerse-Backend/pkg/wallet"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPurchaseRepository struct {
	purchases []*entities.Purchase
}

func (r *memPurchaseRepository) CreatePurchase(_ context.Context, purchase *entities.Purchase) error {
	stored := *purchase
	r.purchases = append(r.purchases, &stored)
	return nil
}

func (r *memPurchaseRepository) GetPurchaseByID(_ context.Context, id string) (*entities.Purchase, error) {
	for _, p := range r.purchases {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, domain.ErrPurchaseNotFound
}

func (r *memPurchaseRepository) GetUserPurchases(_ context.Context, userID string, page, limit int) ([]*entities.Purchase, int64, error) {
	var matched []*entities.Purchase
	for _, p := range r.purchases {
		if p.UserID.String() == userID {
			matched = append(matched, p)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *memPurchaseRepository) HasCompletedPurchase(_ context.Context, userID, itemType, itemID string) (bool, error) {
	for _, p := range r.purchases {
		if p.UserID.String() == userID && p.ItemType == itemType && p.ItemID.String() == itemID && p.Status == domain.PurchaseStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPurchaseRepository) MarkRefunded(_ context.Context, id string, refundedAt time.Time, reason string) error {
	for _, p := range r.purchases {
		if p.ID.String() == id && p.Status == domain.PurchaseStatusCompleted {
			p.Status = domain.PurchaseStatusRefunded
			p.RefundedAt = &refundedAt
			p.RefundReason = reason
			return nil
		}
	}
	return domain.ErrInvalidPurchaseState
}

func (r *memPurchaseRepository) ReinstateCompleted(_ context.Context, id string) error {
	for _, p := range r.purchases {
		if p.ID.String() == id && p.Status == domain.PurchaseStatusRefunded {
			p.Status = domain.PurchaseStatusCompleted
			p.RefundedAt = nil
			p.RefundReason = ""
			return nil
		}
	}
	return domain.ErrPurchaseNotFound
}

type memMangaRepository struct {
	mangas   map[string]*entities.Manga
	chapters map[string]*entities.Chapter
}

func newMemMangaRepository() *memMangaRepository {
	return &memMangaRepository{
		mangas:   make(map[string]*entities.Manga),
		chapters: make(map[string]*entities.Chapter),
	}
}

func (r *memMangaRepository) CreateManga(_ context.Context, manga *entities.Manga) error {
	r.mangas[manga.ID.String()] = manga
	return nil
}

func (r *memMangaRepository) GetMangas(_ context.Context, search string, page, limit int) ([]*entities.Manga, int64, error) {
	return nil, 0, nil
}

func (r *memMangaRepository) GetMangaByID(_ context.Context, id string) (*entities.Manga, error) {
	manga, ok := r.mangas[id]
	if !ok {
		return nil, domain.ErrMangaNotFound
	}
	return manga, nil
}

func (r *memMangaRepository) UpdateManga(_ context.Context, manga *entities.Manga) error {
	r.mangas[manga.ID.String()] = manga
	return nil
}

func (r *memMangaRepository) IncrementViewCount(_ context.Context, id string) error {
	return nil
}

func (r *memMangaRepository) CreateChapter(_ context.Context, chapter *entities.Chapter) error {
	r.chapters[chapter.ID.String()] = chapter
	return nil
}

func (r *memMangaRepository) GetChaptersByManga(_ context.Context, mangaID string) ([]*entities.Chapter, error) {
	var matched []*entities.Chapter
	for _, chapter := range r.chapters {
		if chapter.MangaID.String() == mangaID {
			matched = append(matched, chapter)
		}
	}
	return matched, nil
}

func (r *memMangaRepository) GetChapterByID(_ context.Context, id string) (*entities.Chapter, error) {
	chapter, ok := r.chapters[id]
	if !ok {
		return nil, domain.ErrChapterNotFound
	}
	return chapter, nil
}

func (r *memMangaRepository) GetPremiumChaptersByManga(_ context.Context, mangaID string) ([]*entities.Chapter, error) {
	var matched []*entities.Chapter
	for _, chapter := range r.chapters {
		if chapter.MangaID.String() == mangaID && chapter.IsPremium {
			matched = append(matched, chapter)
		}
	}
	return matched, nil
}

type memWalletRepository struct {
	wallets   map[string]*entities.Wallet
	ledger    []*entities.WalletTransaction
	failApply error // next ApplyTransaction fails with this, once
}

func newMemWalletRepository() *memWalletRepository {
	return &memWalletRepository{wallets: make(map[string]*entities.Wallet)}
}

func (r *memWalletRepository) GetWalletByUserID(_ context.Context, userID string) (*entities.Wallet, error) {
	w, ok := r.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return w, nil
}

func (r *memWalletRepository) CreateWallet(_ context.Context, w *entities.Wallet) error {
	r.wallets[w.UserID.String()] = w
	return nil
}

func (r *memWalletRepository) ApplyTransaction(_ context.Context, entry *entities.WalletTransaction) (int, error) {
	if r.failApply != nil {
		err := r.failApply
		r.failApply = nil
		return 0, err
	}

	var w *entities.Wallet
	for _, candidate := range r.wallets {
		if candidate.ID == entry.WalletID {
			w = candidate
			break
		}
	}
	if w == nil {
		return 0, domain.ErrWalletNotFound
	}

	balance := &w.TokensBalance
	if entry.Currency == domain.CurrencyCoins {
		balance = &w.CoinsBalance
	}
	if entry.Amount < 0 && *balance < -entry.Amount {
		return 0, domain.ErrInsufficientBalance
	}

	*balance += entry.Amount
	entry.Balance = *balance
	r.ledger = append(r.ledger, entry)
	return *balance, nil
}

func (r *memWalletRepository) GetWalletTransactions(_ context.Context, walletID string, page, limit int) ([]*entities.WalletTransaction, int64, error) {
	return nil, 0, nil
}

func (r *memWalletRepository) HasTransactionReference(_ context.Context, userID, txType, referenceID string) (bool, error) {
	for _, entry := range r.ledger {
		if entry.UserID.String() == userID && entry.Type == txType && entry.ReferenceID == referenceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memWalletRepository) SetActiveSubscription(_ context.Context, userID string, subscriptionID *uuid.UUID) error {
	return nil
}

func (r *memWalletRepository) GetTokenPackages(_ context.Context) ([]*entities.TokenPackage, error) {
	return nil, nil
}

func (r *memWalletRepository) GetTokenPackageByID(_ context.Context, id string) (*entities.TokenPackage, error) {
	return nil, domain.ErrInvalidTokenPackage
}

type fakeRevoker struct {
	revoked []string
	reasons []string
}

func (f *fakeRevoker) RevokeSubscription(_ context.Context, subscriptionID string, reason string) error {
	f.revoked = append(f.revoked, subscriptionID)
	f.reasons = append(f.reasons, reason)
	return nil
}

var errWalletDown = errors.New("wallet storage unavailable")

// staleReadPurchaseRepository serves reads from a snapshot taken before the
// latest write, the way a second racing refund call would see the row.
type staleReadPurchaseRepository struct {
	*memPurchaseRepository
	stale *entities.Purchase
}

func (r *staleReadPurchaseRepository) GetPurchaseByID(ctx context.Context, id string) (*entities.Purchase, error) {
	if r.stale != nil && r.stale.ID.String() == id {
		snapshot := *r.stale
		return &snapshot, nil
	}
	return r.memPurchaseRepository.GetPurchaseByID(ctx, id)
}

type fixture struct {
	service      PurchaseService
	walletSvc    wallet.WalletService
	walletRepo   *memWalletRepository
	purchaseRepo *memPurchaseRepository
	mangaRepo    *memMangaRepository
	revoker      *fakeRevoker
}

func newFixture() *fixture {
	purchaseRepo := &memPurchaseRepository{}
	mangaRepo := newMemMangaRepository()
	revoker := &fakeRevoker{}
	walletRepo := newMemWalletRepository()
	walletSvc := wallet.NewWalletService(walletRepo)
	return &fixture{
		service:      NewPurchaseService(purchaseRepo, walletSvc, mangaRepo, revoker),
		walletSvc:    walletSvc,
		walletRepo:   walletRepo,
		purchaseRepo: purchaseRepo,
		mangaRepo:    mangaRepo,
		revoker:      revoker,
	}
}

func (f *fixture) fund(t *testing.T, userID string, tokens int) {
	t.Helper()
	_, err := f.walletSvc.Credit(context.Background(), userID, tokens, domain.CurrencyTokens, domain.TransactionTypePurchase, "test top up", "")
	require.NoError(t, err)
}

func (f *fixture) tokens(t *testing.T, userID string) int {
	t.Helper()
	balance, err := f.walletSvc.GetOrCreateWallet(context.Background(), userID)
	require.NoError(t, err)
	return balance.TokensBalance
}

func (f *fixture) addChapter(premium bool, price int) *entities.Chapter {
	chapter := &entities.Chapter{
		ID:         uuid.New(),
		MangaID:    uuid.New(),
		Number:     1,
		Title:      "First Steps",
		IsPremium:  premium,
		TokenPrice: price,
	}
	f.mangaRepo.chapters[chapter.ID.String()] = chapter
	return chapter
}

func (f *fixture) addManga(premium bool, price int) *entities.Manga {
	manga := &entities.Manga{
		ID:         uuid.New(),
		Title:      "Blade of Dawn",
		IsPremium:  premium,
		TokenPrice: price,
	}
	f.mangaRepo.mangas[manga.ID.String()] = manga
	return manga
}

func TestBuyChapter(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 10)
	chapter := f.addChapter(true, 5)

	purchase, err := f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	require.NoError(t, err)

	assert.Equal(t, domain.PurchaseStatusCompleted, purchase.Status)
	assert.Equal(t, domain.ItemKindChapter, purchase.Item.Kind)
	assert.Equal(t, chapter.ID.String(), purchase.Item.ID)
	assert.Equal(t, 5, purchase.Amount)
	assert.Equal(t, domain.PaymentMethodTokenBalance, purchase.PaymentMethod)
	assert.Equal(t, 5, f.tokens(t, userID))
}

func TestBuyChapter_AlreadyOwned(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 10)
	chapter := f.addChapter(true, 5)

	_, err := f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	require.NoError(t, err)

	_, err = f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPurchased)

	// The duplicate attempt must not charge again
	assert.Equal(t, 5, f.tokens(t, userID))
	assert.Len(t, f.purchaseRepo.purchases, 1)
}

func TestBuyChapter_FreeContent(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 10)
	chapter := f.addChapter(false, 0)

	_, err := f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	assert.ErrorIs(t, err, domain.ErrContentNotPurchasable)
	assert.Equal(t, 10, f.tokens(t, userID))
}

func TestBuyChapter_InsufficientBalance(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 3)
	chapter := f.addChapter(true, 5)

	_, err := f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	assert.Equal(t, 3, f.tokens(t, userID))
	assert.Empty(t, f.purchaseRepo.purchases)
}

func TestBuyChapter_UnknownChapter(t *testing.T) {
	f := newFixture()

	_, err := f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: uuid.New().String()}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrChapterNotFound)
}

func TestBuyManga(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 100)
	manga := f.addManga(true, 40)

	purchase, err := f.service.BuyManga(context.Background(), domain.BuyMangaRequest{MangaID: manga.ID.String()}, userID)
	require.NoError(t, err)

	assert.Equal(t, domain.ItemKindManga, purchase.Item.Kind)
	assert.Equal(t, manga.ID.String(), purchase.Item.ID)
	assert.Equal(t, 60, f.tokens(t, userID))

	_, err = f.service.BuyManga(context.Background(), domain.BuyMangaRequest{MangaID: manga.ID.String()}, userID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPurchased)
}

func TestMarkRefunded_TokenPurchase(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 10)
	chapter := f.addChapter(true, 5)

	bought, err := f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	require.NoError(t, err)

	refunded, err := f.service.MarkRefunded(context.Background(), domain.RefundPurchaseRequest{
		PurchaseID: bought.ID,
		Reason:     "duplicate charge",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PurchaseStatusRefunded, refunded.Status)
	require.NotNil(t, refunded.RefundedAt)
	assert.Equal(t, "duplicate charge", refunded.RefundReason)

	// Tokens come back and the entitlement is gone
	assert.Equal(t, 10, f.tokens(t, userID))
	owned, err := f.purchaseRepo.HasCompletedPurchase(context.Background(), userID, domain.ItemKindChapter, chapter.ID.String())
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestMarkRefunded_OnlyCompletedPurchases(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 10)
	chapter := f.addChapter(true, 5)

	bought, err := f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	require.NoError(t, err)

	_, err = f.service.MarkRefunded(context.Background(), domain.RefundPurchaseRequest{PurchaseID: bought.ID, Reason: "first"})
	require.NoError(t, err)

	// Refunding twice would double-credit the wallet
	_, err = f.service.MarkRefunded(context.Background(), domain.RefundPurchaseRequest{PurchaseID: bought.ID, Reason: "second"})
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseState)
	assert.Equal(t, 10, f.tokens(t, userID))
}

func TestMarkRefunded_CreditFailureLeavesCompleted(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 10)
	chapter := f.addChapter(true, 5)

	bought, err := f.service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	require.NoError(t, err)

	f.walletRepo.failApply = errWalletDown
	_, err = f.service.MarkRefunded(context.Background(), domain.RefundPurchaseRequest{PurchaseID: bought.ID, Reason: "oops"})
	assert.ErrorIs(t, err, errWalletDown)

	// The row is back to completed so the refund can be retried
	row, err := f.purchaseRepo.GetPurchaseByID(context.Background(), bought.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusCompleted, row.Status)
	assert.Nil(t, row.RefundedAt)
	assert.Equal(t, 5, f.tokens(t, userID))

	refunded, err := f.service.MarkRefunded(context.Background(), domain.RefundPurchaseRequest{PurchaseID: bought.ID, Reason: "oops"})
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusRefunded, refunded.Status)
	assert.Equal(t, 10, f.tokens(t, userID))

	refunds := 0
	for _, entry := range f.walletRepo.ledger {
		if entry.Type == domain.TransactionTypeRefund {
			refunds++
		}
	}
	assert.Equal(t, 1, refunds)
}

func TestMarkRefunded_StaleReadCannotDoubleCredit(t *testing.T) {
	purchaseRepo := &memPurchaseRepository{}
	staleRepo := &staleReadPurchaseRepository{memPurchaseRepository: purchaseRepo}
	mangaRepo := newMemMangaRepository()
	walletRepo := newMemWalletRepository()
	walletSvc := wallet.NewWalletService(walletRepo)
	service := NewPurchaseService(staleRepo, walletSvc, mangaRepo, &fakeRevoker{})

	userID := uuid.New().String()
	_, err := walletSvc.Credit(context.Background(), userID, 10, domain.CurrencyTokens, domain.TransactionTypePurchase, "test top up", "")
	require.NoError(t, err)

	chapter := &entities.Chapter{ID: uuid.New(), MangaID: uuid.New(), Number: 1, Title: "First Steps", IsPremium: true, TokenPrice: 5}
	mangaRepo.chapters[chapter.ID.String()] = chapter

	bought, err := service.BuyChapter(context.Background(), domain.BuyChapterRequest{ChapterID: chapter.ID.String()}, userID)
	require.NoError(t, err)

	// Freeze the pre-refund row so later reads look like the second of two
	// racing refund calls, both of which saw a completed purchase
	row, err := purchaseRepo.GetPurchaseByID(context.Background(), bought.ID)
	require.NoError(t, err)
	snapshot := *row
	staleRepo.stale = &snapshot

	_, err = service.MarkRefunded(context.Background(), domain.RefundPurchaseRequest{PurchaseID: bought.ID, Reason: "first"})
	require.NoError(t, err)

	// The loser of the race fails at the conditional transition, before any credit
	_, err = service.MarkRefunded(context.Background(), domain.RefundPurchaseRequest{PurchaseID: bought.ID, Reason: "second"})
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseState)

	balance, err := walletSvc.GetOrCreateWallet(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.TokensBalance)

	refunds := 0
	for _, entry := range walletRepo.ledger {
		if entry.Type == domain.TransactionTypeRefund {
			refunds++
		}
	}
	assert.Equal(t, 1, refunds)
}

func TestMarkRefunded_SubscriptionPurchaseRevokes(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	subscriptionID := uuid.New()

	purchaseID, err := f.service.RecordPurchase(context.Background(), domain.RecordPurchaseParams{
		UserID:        userID.String(),
		PurchaseType:  domain.PurchaseTypeSubscription,
		Item:          domain.PurchaseItem{Kind: domain.ItemKindSubscription, ID: subscriptionID.String()},
		Amount:        domain.PRICE_PREMIUM_MONTHLY_IDR,
		Currency:      domain.CurrencyIDR,
		PaymentMethod: domain.PaymentMethodMidtrans,
		Status:        domain.PurchaseStatusCompleted,
		Description:   "Premium subscription - monthly",
	})
	require.NoError(t, err)

	_, err = f.service.MarkRefunded(context.Background(), domain.RefundPurchaseRequest{
		PurchaseID: purchaseID,
		Reason:     "chargeback",
	})
	require.NoError(t, err)

	require.Len(t, f.revoker.revoked, 1)
	assert.Equal(t, subscriptionID.String(), f.revoker.revoked[0])
	assert.Equal(t, "chargeback", f.revoker.reasons[0])
}

func TestMakeDonation(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 100)

	donation, err := f.service.MakeDonation(context.Background(), domain.MakeDonationRequest{
		Amount:  50,
		Message: "keep drawing",
	}, userID)
	require.NoError(t, err)

	assert.Equal(t, domain.PurchaseTypeDonation, donation.PurchaseType)
	assert.Equal(t, domain.ItemKindDonation, donation.Item.Kind)
	assert.Equal(t, donation.ID, donation.Item.ID)
	assert.Equal(t, 50, f.tokens(t, userID))
}

func TestMakeDonation_InsufficientBalance(t *testing.T) {
	f := newFixture()
	userID := uuid.New().String()
	f.fund(t, userID, 10)

	_, err := f.service.MakeDonation(context.Background(), domain.MakeDonationRequest{Amount: 50}, userID)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Empty(t, f.purchaseRepo.purchases)
}
