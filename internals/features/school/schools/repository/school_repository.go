package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/schools/model"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) Create(ctx context.Context, s *model.SchoolModel) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SchoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SchoolModel, error) {
	var s model.SchoolModel
	err := r.DB.WithContext(ctx).
		Where("school_id = ?", id).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SchoolRepository) FindBySlug(ctx context.Context, slug string) (*model.SchoolModel, error) {
	var s model.SchoolModel
	err := r.DB.WithContext(ctx).
		Where("lower(school_slug) = lower(?)", slug).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SchoolRepository) Update(ctx context.Context, s *model.SchoolModel) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

func (r *SchoolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("school_id = ?", id).
		Delete(&model.SchoolModel{}).Error
}
