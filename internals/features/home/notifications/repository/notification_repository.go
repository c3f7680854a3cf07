package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/notifications/model"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.NotificationModel) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]model.NotificationModel, int64, error) {
	var total int64
	base := r.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_school_id = ?", schoolID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.NotificationModel
	if err := base.
		Order("notification_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
