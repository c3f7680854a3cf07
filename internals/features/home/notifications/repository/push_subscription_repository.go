package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/notifications/model"
)

type PushSubscriptionRepository struct {
	DB *gorm.DB
}

func NewPushSubscriptionRepository(db *gorm.DB) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{DB: db}
}

// Upsert: endpoint yang sama untuk user yang sama cukup refresh keys.
func (r *PushSubscriptionRepository) Save(ctx context.Context, s *model.PushSubscriptionModel) error {
	existing := &model.PushSubscriptionModel{}
	err := r.DB.WithContext(ctx).
		Where("push_subscription_user_id = ? AND push_subscription_endpoint = ?",
			s.PushSubscriptionUserID, s.PushSubscriptionEndpoint).
		First(existing).Error
	if err == nil {
		existing.PushSubscriptionKeys = s.PushSubscriptionKeys
		existing.PushSubscriptionUA = s.PushSubscriptionUA
		return r.DB.WithContext(ctx).Save(existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *PushSubscriptionRepository) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]model.PushSubscriptionModel, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var rows []model.PushSubscriptionModel
	err := r.DB.WithContext(ctx).
		Where("push_subscription_user_id IN ?", userIDs).
		Find(&rows).Error
	return rows, err
}

func (r *PushSubscriptionRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("push_subscription_id = ?", id).
		Delete(&model.PushSubscriptionModel{}).Error
}

func (r *PushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error {
	return r.DB.WithContext(ctx).
		Where("push_subscription_user_id = ? AND push_subscription_endpoint = ?",
			userID, strings.TrimSpace(endpoint)).
		Delete(&model.PushSubscriptionModel{}).Error
}
