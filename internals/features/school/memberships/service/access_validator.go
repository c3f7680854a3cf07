package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	membershipModel "sekolahku_backend/internals/features/school/memberships/model"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
)

/* =========================
   Error messages (authorization)
========================= */

// Pesan dibedakan per layer supaya caller/test bisa tahu layer mana
// yang menolak.
const (
	ErrMsgSchoolNotFound    = "school not found"
	ErrMsgSubjectNotFound   = "subject not found"
	ErrMsgNotSchoolMember   = "not a member of this school"
	ErrMsgNotSubjectTeacher = "not a teacher on this subject"
)

/* =========================
   Lookup capabilities
========================= */

// MembershipLookup adalah kemampuan baca yang dipakai bersama oleh
// membership directory, subject roster, dan access validator —
// diekstrak sendiri supaya tidak ada cycle antar service.
type MembershipLookup interface {
	FindBySchoolAndUser(ctx context.Context, schoolID, userID uuid.UUID) (*membershipModel.SchoolMembershipModel, error)
}

type RosterLookup interface {
	FindBySubjectAndUser(ctx context.Context, subjectID, userID uuid.UUID) (*subjectModel.SubjectMembershipModel, error)
}

type SubjectResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*subjectModel.SubjectModel, error)
}

/* =========================
   Access Validator
========================= */

// AccessValidator adalah gate stateless yang dipanggil semua operasi
// mutasi. Tidak pernah percaya role hasil cache di request — membership
// selalu di-resolve ulang dari store saat dipanggil (guard terhadap
// perubahan role di tengah session). Read-only, idempotent.
type AccessValidator struct {
	members  MembershipLookup
	roster   RosterLookup
	subjects SubjectResolver
}

func NewAccessValidator(members MembershipLookup, roster RosterLookup, subjects SubjectResolver) *AccessValidator {
	return &AccessValidator{members: members, roster: roster, subjects: subjects}
}

// RequireSchoolAccess memastikan user adalah anggota ACCEPT di sekolah.
// Return membership hasil resolve — caller pakai role-nya untuk
// keputusan bisnis lanjutan (misal delete khusus admin).
func (v *AccessValidator) RequireSchoolAccess(ctx context.Context, userID, schoolID uuid.UUID) (*membershipModel.SchoolMembershipModel, error) {
	m, err := v.members.FindBySchoolAndUser(ctx, schoolID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsAccepted() {
		return nil, fiber.NewError(fiber.StatusForbidden, ErrMsgNotSchoolMember)
	}
	return m, nil
}

// RequireSubjectAccess memvalidasi dua layer:
// 1) membership sekolah pemilik subject harus ACCEPT (error layer sekolah),
// 2) roster entry subject harus ACCEPT (error layer subject).
// Keduanya wajib lolos; teks error dibedakan per layer.
func (v *AccessValidator) RequireSubjectAccess(ctx context.Context, userID, subjectID uuid.UUID) (*subjectModel.SubjectMembershipModel, error) {
	subj, err := v.subjects.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if subj == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgSubjectNotFound)
	}

	if _, err := v.RequireSchoolAccess(ctx, userID, subj.SubjectSchoolID); err != nil {
		return nil, err
	}

	entry, err := v.roster.FindBySubjectAndUser(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.IsAccepted() {
		return nil, fiber.NewError(fiber.StatusForbidden, ErrMsgNotSubjectTeacher)
	}
	return entry, nil
}
