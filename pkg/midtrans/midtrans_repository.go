package midtrans

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	MidtransRepository interface {
		CreateTransaction(ctx context.Context, transaction *entities.PaymentTransaction) error
		GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.PaymentTransaction, error)
		UpdateTransactionStatus(ctx context.Context, orderID, status string) error
	}

	midtransRepository struct {
		db *gorm.DB
	}
)

func NewMidtransRepository(db *gorm.DB) MidtransRepository {
	return &midtransRepository{
		db: db,
	}
}

func (r *midtransRepository) CreateTransaction(ctx context.Context, transaction *entities.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *midtransRepository) GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.PaymentTransaction, error) {
	var transaction entities.PaymentTransaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *midtransRepository) UpdateTransactionStatus(ctx context.Context, orderID, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.PaymentTransaction{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
}
