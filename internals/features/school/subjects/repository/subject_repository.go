package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/subjects/model"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(ctx context.Context, s *model.SubjectModel) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SubjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SubjectModel, error) {
	var s model.SubjectModel
	err := r.DB.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]model.SubjectModel, int64, error) {
	var total int64
	base := r.DB.WithContext(ctx).Model(&model.SubjectModel{}).
		Where("subject_school_id = ?", schoolID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.SubjectModel
	if err := base.
		Order("subject_created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *SubjectRepository) CountBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&model.SubjectModel{}).
		Where("subject_school_id = ?", schoolID).
		Count(&cnt).Error
	return cnt, err
}

func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("subject_id = ?", id).
		Delete(&model.SubjectModel{}).Error
}

func (r *SubjectRepository) DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("subject_school_id = ?", schoolID).
		Delete(&model.SubjectModel{}).Error
}
