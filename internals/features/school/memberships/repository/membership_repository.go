package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/memberships/model"
)

// ErrDuplicateMembership dikembalikan saat unique index
// (school_id, user_id) kena — constraint DB adalah sumber kebenaran
// uniqueness, pre-check di service cuma optimasi.
var ErrDuplicateMembership = errors.New("membership already exists for this school and user")

type MembershipRepository struct {
	DB *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{DB: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *model.SchoolMembershipModel) error {
	err := r.DB.WithContext(ctx).Create(m).Error
	if isUniqueViolation(err) {
		return ErrDuplicateMembership
	}
	return err
}

func (r *MembershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SchoolMembershipModel, error) {
	var m model.SchoolMembershipModel
	err := r.DB.WithContext(ctx).
		Where("school_membership_id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) FindBySchoolAndUser(ctx context.Context, schoolID, userID uuid.UUID) (*model.SchoolMembershipModel, error) {
	var m model.SchoolMembershipModel
	err := r.DB.WithContext(ctx).
		Where("school_membership_school_id = ? AND school_membership_user_id = ?", schoolID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]model.SchoolMembershipModel, int64, error) {
	var total int64
	base := r.DB.WithContext(ctx).Model(&model.SchoolMembershipModel{}).
		Where("school_membership_school_id = ?", schoolID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.SchoolMembershipModel
	if err := base.
		Order("school_membership_created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *MembershipRepository) ListAcceptedBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolMembershipModel, error) {
	var rows []model.SchoolMembershipModel
	err := r.DB.WithContext(ctx).
		Where("school_membership_school_id = ? AND school_membership_status = ?",
			schoolID, model.MemberStatusAccept).
		Find(&rows).Error
	return rows, err
}

// CountBySchool menghitung semua row hidup (pending ikut dihitung —
// undangan yang belum dijawab tetap memakan slot member).
func (r *MembershipRepository) CountBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&model.SchoolMembershipModel{}).
		Where("school_membership_school_id = ?", schoolID).
		Count(&cnt).Error
	return cnt, err
}

func (r *MembershipRepository) CountAcceptedAdmins(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&model.SchoolMembershipModel{}).
		Where("school_membership_school_id = ? AND school_membership_role = ? AND school_membership_status = ?",
			schoolID, model.MemberRoleAdmin, model.MemberStatusAccept).
		Count(&cnt).Error
	return cnt, err
}

func (r *MembershipRepository) Update(ctx context.Context, m *model.SchoolMembershipModel) error {
	return r.DB.WithContext(ctx).Save(m).Error
}

func (r *MembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("school_membership_id = ?", id).
		Delete(&model.SchoolMembershipModel{}).Error
}

func (r *MembershipRepository) DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("school_membership_school_id = ?", schoolID).
		Delete(&model.SchoolMembershipModel{}).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// fallback kalau TranslateError mati
	return strings.Contains(err.Error(), "SQLSTATE 23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}
