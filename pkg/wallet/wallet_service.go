package wallet

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	WalletService interface {
		GetOrCreateWallet(ctx context.Context, userID string) (*domain.WalletBalance, error)
		Credit(ctx context.Context, userID string, amount int, currency, txType, description, referenceID string) (int, error)
		Debit(ctx context.Context, userID string, amount int, currency, txType, description, referenceID string) (int, error)
		GetTransactionHistory(ctx context.Context, userID string, page, limit int) ([]*domain.WalletTransaction, int64, error)
		HasLedgerEntry(ctx context.Context, userID, txType, referenceID string) (bool, error)
		RewardCoins(ctx context.Context, req domain.RewardCoinsRequest) error
		LinkActiveSubscription(ctx context.Context, userID string, subscriptionID *uuid.UUID) error

		GetTokenPackages(ctx context.Context) ([]*domain.TokenPackage, error)
		GetTokenPackageByID(ctx context.Context, id string) (*domain.TokenPackage, error)
	}

	walletService struct {
		walletRepository WalletRepository
	}
)

func NewWalletService(walletRepository WalletRepository) WalletService {
	return &walletService{
		walletRepository: walletRepository,
	}
}

// getOrCreate returns the user's wallet, creating an empty one on first
// touch. Wallets are never deleted while the owning user exists.
func (s *walletService) getOrCreate(ctx context.Context, userID string) (*entities.Wallet, error) {
	wallet, err := s.walletRepository.GetWalletByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	wallet = &entities.Wallet{
		ID:            uuid.New(),
		UserID:        userUUID,
		TokensBalance: 0,
		CoinsBalance:  0,
	}
	if err := s.walletRepository.CreateWallet(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) GetOrCreateWallet(ctx context.Context, userID string) (*domain.WalletBalance, error) {
	wallet, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := &domain.WalletBalance{
		TokensBalance: wallet.TokensBalance,
		CoinsBalance:  wallet.CoinsBalance,
	}
	if wallet.ActiveSubscriptionID != nil {
		id := wallet.ActiveSubscriptionID.String()
		balance.ActiveSubscriptionID = &id
	}
	return balance, nil
}

func (s *walletService) Credit(ctx context.Context, userID string, amount int, currency, txType, description, referenceID string) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if currency != domain.CurrencyTokens && currency != domain.CurrencyCoins {
		return 0, domain.ErrInvalidCurrency
	}

	wallet, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}

	entry := &entities.WalletTransaction{
		ID:          uuid.New(),
		WalletID:    wallet.ID,
		UserID:      wallet.UserID,
		Type:        txType,
		Amount:      amount,
		Currency:    currency,
		Description: description,
		ReferenceID: referenceID,
		Timestamp:   entities.Timestamp{CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}

	return s.walletRepository.ApplyTransaction(ctx, entry)
}

func (s *walletService) Debit(ctx context.Context, userID string, amount int, currency, txType, description, referenceID string) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if currency != domain.CurrencyTokens && currency != domain.CurrencyCoins {
		return 0, domain.ErrInvalidCurrency
	}

	wallet, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}

	entry := &entities.WalletTransaction{
		ID:          uuid.New(),
		WalletID:    wallet.ID,
		UserID:      wallet.UserID,
		Type:        txType,
		Amount:      -amount, // negative for spending
		Currency:    currency,
		Description: description,
		ReferenceID: referenceID,
		Timestamp:   entities.Timestamp{CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}

	return s.walletRepository.ApplyTransaction(ctx, entry)
}

func (s *walletService) GetTransactionHistory(ctx context.Context, userID string, page, limit int) ([]*domain.WalletTransaction, int64, error) {
	wallet, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	transactions, count, err := s.walletRepository.GetWalletTransactions(ctx, wallet.ID.String(), page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.WalletTransaction, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, &domain.WalletTransaction{
			ID:          tx.ID.String(),
			Type:        tx.Type,
			Amount:      tx.Amount,
			Currency:    tx.Currency,
			Description: tx.Description,
			ReferenceID: tx.ReferenceID,
			Balance:     tx.Balance,
			CreatedAt:   tx.CreatedAt,
		})
	}

	return result, count, nil
}

// HasLedgerEntry reports whether an entry of the given type already
// references referenceID. Payout flows check it before crediting so a
// retried settlement or refund cannot grant the same money twice.
func (s *walletService) HasLedgerEntry(ctx context.Context, userID, txType, referenceID string) (bool, error) {
	if referenceID == "" {
		return false, nil
	}
	return s.walletRepository.HasTransactionReference(ctx, userID, txType, referenceID)
}

func (s *walletService) RewardCoins(ctx context.Context, req domain.RewardCoinsRequest) error {
	description := fmt.Sprintf("Rewarded %d coins for %s", req.Amount, req.Reason)
	if req.Description != "" {
		description = req.Description
	}

	_, err := s.Credit(ctx, req.UserID, req.Amount, domain.CurrencyCoins, domain.TransactionTypeReward, description, "")
	return err
}

func (s *walletService) LinkActiveSubscription(ctx context.Context, userID string, subscriptionID *uuid.UUID) error {
	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.walletRepository.SetActiveSubscription(ctx, userID, subscriptionID)
}

func (s *walletService) GetTokenPackages(ctx context.Context) ([]*domain.TokenPackage, error) {
	packages, err := s.walletRepository.GetTokenPackages(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.TokenPackage, 0, len(packages))
	for _, pkg := range packages {
		result = append(result, &domain.TokenPackage{
			ID:          pkg.ID.String(),
			Name:        pkg.Name,
			Amount:      pkg.Amount,
			Price:       pkg.Price,
			Currency:    pkg.Currency,
			Description: pkg.Description,
			ImageURL:    pkg.ImageURL,
			IsPopular:   pkg.IsPopular,
		})
	}

	return result, nil
}

func (s *walletService) GetTokenPackageByID(ctx context.Context, id string) (*domain.TokenPackage, error) {
	pkg, err := s.walletRepository.GetTokenPackageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPackage{
		ID:          pkg.ID.String(),
		Name:        pkg.Name,
		Amount:      pkg.Amount,
		Price:       pkg.Price,
		Currency:    pkg.Currency,
		Description: pkg.Description,
		ImageURL:    pkg.ImageURL,
		IsPopular:   pkg.IsPopular,
	}, nil
}
