package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/classes/model"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(ctx context.Context, c *model.ClassModel) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *ClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ClassModel, error) {
	var c model.ClassModel
	err := r.DB.WithContext(ctx).
		Where("class_id = ?", id).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]model.ClassModel, int64, error) {
	var total int64
	base := r.DB.WithContext(ctx).Model(&model.ClassModel{}).
		Where("class_school_id = ?", schoolID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.ClassModel
	if err := base.
		Order("class_created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ClassRepository) CountBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&model.ClassModel{}).
		Where("class_school_id = ?", schoolID).
		Count(&cnt).Error
	return cnt, err
}

func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("class_id = ?", id).
		Delete(&model.ClassModel{}).Error
}

func (r *ClassRepository) DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("class_school_id = ?", schoolID).
		Delete(&model.ClassModel{}).Error
}
