package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/subjects/model"
)

// ErrDuplicateRoster: unique index (subject_id, user_id) kena.
var ErrDuplicateRoster = errors.New("roster entry already exists for this subject and user")

type RosterRepository struct {
	DB *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{DB: db}
}

func (r *RosterRepository) Create(ctx context.Context, m *model.SubjectMembershipModel) error {
	err := r.DB.WithContext(ctx).Create(m).Error
	if err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "SQLSTATE 23505") ||
		strings.Contains(err.Error(), "duplicate key value")) {
		return ErrDuplicateRoster
	}
	return err
}

func (r *RosterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SubjectMembershipModel, error) {
	var m model.SubjectMembershipModel
	err := r.DB.WithContext(ctx).
		Where("subject_membership_id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *RosterRepository) FindBySubjectAndUser(ctx context.Context, subjectID, userID uuid.UUID) (*model.SubjectMembershipModel, error) {
	var m model.SubjectMembershipModel
	err := r.DB.WithContext(ctx).
		Where("subject_membership_subject_id = ? AND subject_membership_user_id = ?", subjectID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *RosterRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID, limit, offset int) ([]model.SubjectMembershipModel, int64, error) {
	var total int64
	base := r.DB.WithContext(ctx).Model(&model.SubjectMembershipModel{}).
		Where("subject_membership_subject_id = ?", subjectID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.SubjectMembershipModel
	if err := base.
		Order("subject_membership_created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *RosterRepository) CountAcceptedAdmins(ctx context.Context, subjectID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&model.SubjectMembershipModel{}).
		Where("subject_membership_subject_id = ? AND subject_membership_role = 'admin' AND subject_membership_status = 'accept'",
			subjectID).
		Count(&cnt).Error
	return cnt, err
}

func (r *RosterRepository) Update(ctx context.Context, m *model.SubjectMembershipModel) error {
	return r.DB.WithContext(ctx).Save(m).Error
}

func (r *RosterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("subject_membership_id = ?", id).
		Delete(&model.SubjectMembershipModel{}).Error
}

func (r *RosterRepository) DeleteBySubject(ctx context.Context, subjectID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("subject_membership_subject_id = ?", subjectID).
		Delete(&model.SubjectMembershipModel{}).Error
}

// DeleteBySchool: cascade saat sekolah dihapus (school_id denormalized).
func (r *RosterRepository) DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("subject_membership_school_id = ?", schoolID).
		Delete(&model.SubjectMembershipModel{}).Error
}
