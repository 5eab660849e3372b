package purchase

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	PurchaseRepository interface {
		CreatePurchase(ctx context.Context, purchase *entities.Purchase) error
		GetPurchaseByID(ctx context.Context, id string) (*entities.Purchase, error)
		GetUserPurchases(ctx context.Context, userID string, page, limit int) ([]*entities.Purchase, int64, error)
		HasCompletedPurchase(ctx context.Context, userID, itemType, itemID string) (bool, error)
		MarkRefunded(ctx context.Context, id string, refundedAt time.Time, reason string) error
		ReinstateCompleted(ctx context.Context, id string) error
	}

	purchaseRepository struct {
		db *gorm.DB
	}
)

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

func (r *purchaseRepository) CreatePurchase(ctx context.Context, purchase *entities.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) GetPurchaseByID(ctx context.Context, id string) (*entities.Purchase, error) {
	var purchase entities.Purchase
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) GetUserPurchases(ctx context.Context, userID string, page, limit int) ([]*entities.Purchase, int64, error) {
	var purchases []*entities.Purchase
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Purchase{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&purchases).Error; err != nil {
		return nil, 0, err
	}

	return purchases, count, nil
}

func (r *purchaseRepository) HasCompletedPurchase(ctx context.Context, userID, itemType, itemID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Purchase{}).
		Where("user_id = ? AND item_type = ? AND item_id = ? AND status = ?",
			userID, itemType, itemID, domain.PurchaseStatusCompleted).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkRefunded only touches the refund fields, and only on a completed row.
// The status predicate makes the transition a claim: of two concurrent
// refund calls exactly one sees an affected row, the other gets
// ErrInvalidPurchaseState.
func (r *purchaseRepository) MarkRefunded(ctx context.Context, id string, refundedAt time.Time, reason string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Purchase{}).
		Where("id = ? AND status = ?", id, domain.PurchaseStatusCompleted).
		Updates(map[string]interface{}{
			"status":        domain.PurchaseStatusRefunded,
			"refunded_at":   refundedAt,
			"refund_reason": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidPurchaseState
	}
	return nil
}

// ReinstateCompleted puts a claimed row back to completed after a failed
// refund payout so the refund can be retried.
func (r *purchaseRepository) ReinstateCompleted(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Purchase{}).
		Where("id = ? AND status = ?", id, domain.PurchaseStatusRefunded).
		Updates(map[string]interface{}{
			"status":        domain.PurchaseStatusCompleted,
			"refunded_at":   nil,
			"refund_reason": "",
		}).Error
}
