package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	membershipModel "sekolahku_backend/internals/features/school/memberships/model"
)

/* =========================
   Model: subject_memberships
========================= */

// SubjectMembershipModel adalah roster pengajar level subject.
// Hanya bermakna kalau user punya SchoolMembership ACCEPT di sekolah
// yang sama — akses subject selalu subordinat akses sekolah.
// school_id didenormalisasi untuk kebutuhan quota & notifikasi.
type SubjectMembershipModel struct {
	// PK
	SubjectMembershipID uuid.UUID `gorm:"column:subject_membership_id;type:uuid;default:gen_random_uuid();primaryKey" json:"subject_membership_id"`

	// Scope/Relasi
	SubjectMembershipSubjectID uuid.UUID `gorm:"column:subject_membership_subject_id;type:uuid;not null;index;uniqueIndex:uq_subject_membership_subject_user" json:"subject_membership_subject_id"`
	SubjectMembershipSchoolID  uuid.UUID `gorm:"column:subject_membership_school_id;type:uuid;not null;index" json:"subject_membership_school_id"`
	SubjectMembershipUserID    uuid.UUID `gorm:"column:subject_membership_user_id;type:uuid;not null;index;uniqueIndex:uq_subject_membership_subject_user" json:"subject_membership_user_id"`

	// Role & status (enum dipakai bersama dengan school_memberships)
	SubjectMembershipRole   membershipModel.MemberRole   `gorm:"column:subject_membership_role;type:member_role_enum;not null;default:'teacher'" json:"subject_membership_role"`
	SubjectMembershipStatus membershipModel.MemberStatus `gorm:"column:subject_membership_status;type:member_status_enum;not null;default:'pending'" json:"subject_membership_status"`

	// Snapshot kontak saat diundang
	SubjectMembershipUserNameSnapshot  *string `gorm:"column:subject_membership_user_name_snapshot;type:varchar(80)" json:"subject_membership_user_name_snapshot,omitempty"`
	SubjectMembershipUserEmailSnapshot *string `gorm:"column:subject_membership_user_email_snapshot;type:varchar(255)" json:"subject_membership_user_email_snapshot,omitempty"`
	SubjectMembershipUserPhoneSnapshot *string `gorm:"column:subject_membership_user_phone_snapshot;type:varchar(30)" json:"subject_membership_user_phone_snapshot,omitempty"`
	SubjectMembershipUserPhotoSnapshot *string `gorm:"column:subject_membership_user_photo_snapshot;type:text" json:"subject_membership_user_photo_snapshot,omitempty"`

	// Audit & soft delete
	SubjectMembershipCreatedAt time.Time      `gorm:"column:subject_membership_created_at;autoCreateTime" json:"subject_membership_created_at"`
	SubjectMembershipUpdatedAt time.Time      `gorm:"column:subject_membership_updated_at;autoUpdateTime" json:"subject_membership_updated_at"`
	SubjectMembershipDeletedAt gorm.DeletedAt `gorm:"column:subject_membership_deleted_at;index" json:"subject_membership_deleted_at,omitempty"`
}

func (SubjectMembershipModel) TableName() string { return "subject_memberships" }

func (m *SubjectMembershipModel) IsAccepted() bool {
	return m.SubjectMembershipStatus == membershipModel.MemberStatusAccept
}

func (m *SubjectMembershipModel) IsAdmin() bool {
	return m.SubjectMembershipRole == membershipModel.MemberRoleAdmin
}
