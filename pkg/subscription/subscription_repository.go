package subscription

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		CreateSubscription(ctx context.Context, subscription *entities.Subscription) error
		GetActiveByUser(ctx context.Context, userID string, now time.Time) (*entities.Subscription, error)
		GetSubscriptionByID(ctx context.Context, id string) (*entities.Subscription, error)
		UpdateSubscription(ctx context.Context, subscription *entities.Subscription) error
		GetUserSubscriptions(ctx context.Context, userID string, page, limit int) ([]*entities.Subscription, int64, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

func (r *subscriptionRepository) CreateSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

// GetActiveByUser only returns a subscription that is currently entitled:
// the stored flag alone is never trusted, expiry is always re-checked.
func (r *subscriptionRepository) GetActiveByUser(ctx context.Context, userID string, now time.Time) (*entities.Subscription, error) {
	var subscription entities.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, now).
		Order("expires_at DESC").
		First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveSubscription
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepository) GetSubscriptionByID(ctx context.Context, id string) (*entities.Subscription, error) {
	var subscription entities.Subscription
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepository) UpdateSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return r.db.WithContext(ctx).Save(subscription).Error
}

func (r *subscriptionRepository) GetUserSubscriptions(ctx context.Context, userID string, page, limit int) ([]*entities.Subscription, int64, error) {
	var subscriptions []*entities.Subscription
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&subscriptions).Error; err != nil {
		return nil, 0, err
	}

	return subscriptions, count, nil
}
