package wallet

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	WalletRepository interface {
		GetWalletByUserID(ctx context.Context, userID string) (*entities.Wallet, error)
		CreateWallet(ctx context.Context, wallet *entities.Wallet) error
		ApplyTransaction(ctx context.Context, entry *entities.WalletTransaction) (int, error)
		GetWalletTransactions(ctx context.Context, walletID string, page, limit int) ([]*entities.WalletTransaction, int64, error)
		HasTransactionReference(ctx context.Context, userID, txType, referenceID string) (bool, error)
		SetActiveSubscription(ctx context.Context, userID string, subscriptionID *uuid.UUID) error

		// Token packages
		GetTokenPackages(ctx context.Context) ([]*entities.TokenPackage, error)
		GetTokenPackageByID(ctx context.Context, id string) (*entities.TokenPackage, error)
	}

	walletRepository struct {
		db *gorm.DB
	}
)

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) GetWalletByUserID(ctx context.Context, userID string) (*entities.Wallet, error) {
	var wallet entities.Wallet
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) CreateWallet(ctx context.Context, wallet *entities.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

// ApplyTransaction mutates the balance and appends the ledger entry in one
// database transaction. Debits use a conditional update (subtract only while
// the balance stays non-negative) so concurrent debits on the same wallet
// cannot overdraw it.
func (r *walletRepository) ApplyTransaction(ctx context.Context, entry *entities.WalletTransaction) (int, error) {
	column := "tokens_balance"
	if entry.Currency == domain.CurrencyCoins {
		column = "coins_balance"
	}

	newBalance := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&entities.Wallet{}).
			Where("id = ?", entry.WalletID)
		if entry.Amount < 0 {
			update = update.Where(column+" >= ?", -entry.Amount)
		}

		result := update.Update(column, gorm.Expr(column+" + ?", entry.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrInsufficientBalance
		}

		if err := tx.Model(&entities.Wallet{}).
			Where("id = ?", entry.WalletID).
			Select(column).
			Row().Scan(&newBalance); err != nil {
			return err
		}

		entry.Balance = newBalance
		return tx.Create(entry).Error
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

func (r *walletRepository) GetWalletTransactions(ctx context.Context, walletID string, page, limit int) ([]*entities.WalletTransaction, int64, error) {
	var transactions []*entities.WalletTransaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.WalletTransaction{}).
		Where("wallet_id = ?", walletID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

func (r *walletRepository) HasTransactionReference(ctx context.Context, userID, txType, referenceID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.WalletTransaction{}).
		Where("user_id = ? AND type = ? AND reference_id = ?", userID, txType, referenceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *walletRepository) SetActiveSubscription(ctx context.Context, userID string, subscriptionID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Wallet{}).
		Where("user_id = ?", userID).
		Update("active_subscription_id", subscriptionID).Error
}

func (r *walletRepository) GetTokenPackages(ctx context.Context) ([]*entities.TokenPackage, error) {
	var packages []*entities.TokenPackage
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("amount ASC").
		Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *walletRepository) GetTokenPackageByID(ctx context.Context, id string) (*entities.TokenPackage, error) {
	var pkg entities.TokenPackage
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidTokenPackage
		}
		return nil, err
	}
	return &pkg, nil
}
