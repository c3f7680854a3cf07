package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum: member_role_enum
========================= */

type MemberRole string

const (
	MemberRoleAdmin   MemberRole = "admin"
	MemberRoleTeacher MemberRole = "teacher"
)

var validMemberRole = map[MemberRole]struct{}{
	MemberRoleAdmin:   {},
	MemberRoleTeacher: {},
}

func (r MemberRole) String() string { return string(r) }
func (r MemberRole) Valid() bool {
	_, ok := validMemberRole[r]
	return ok
}

// DB round-trip (enum)
func (r MemberRole) Value() (driver.Value, error) {
	if r == "" {
		return nil, nil
	}
	if !r.Valid() {
		return nil, fmt.Errorf("invalid member_role value: %q", r)
	}
	return string(r), nil
}

func (r *MemberRole) Scan(value any) error {
	if value == nil {
		*r = ""
		return nil
	}
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("unsupported Scan type for MemberRole: %T", value)
	}
	rv := MemberRole(strings.ToLower(strings.TrimSpace(s)))
	if rv != "" && !rv.Valid() {
		return fmt.Errorf("invalid member_role value from DB: %q", s)
	}
	*r = rv
	return nil
}

/* =========================
   Enum: member_status_enum
========================= */

type MemberStatus string

const (
	MemberStatusPending MemberStatus = "pending"
	MemberStatusAccept  MemberStatus = "accept"
	MemberStatusReject  MemberStatus = "reject"
)

var validMemberStatus = map[MemberStatus]struct{}{
	MemberStatusPending: {},
	MemberStatusAccept:  {},
	MemberStatusReject:  {},
}

func (st MemberStatus) String() string { return string(st) }
func (st MemberStatus) Valid() bool {
	_, ok := validMemberStatus[st]
	return ok
}

func (st MemberStatus) Value() (driver.Value, error) {
	if st == "" {
		return nil, nil
	}
	if !st.Valid() {
		return nil, fmt.Errorf("invalid member_status value: %q", st)
	}
	return string(st), nil
}

func (st *MemberStatus) Scan(value any) error {
	if value == nil {
		*st = ""
		return nil
	}
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("unsupported Scan type for MemberStatus: %T", value)
	}
	sv := MemberStatus(strings.ToLower(strings.TrimSpace(s)))
	if sv != "" && !sv.Valid() {
		return fmt.Errorf("invalid member_status value from DB: %q", s)
	}
	*st = sv
	return nil
}

/* =========================
   Model: school_memberships
========================= */

// SchoolMembershipModel adalah keanggotaan level sekolah.
// Uniqueness (school_id, user_id) dijaga unique index (partial, non-deleted)
// — pre-check duplikat di service hanya optimasi.
type SchoolMembershipModel struct {
	// PK
	SchoolMembershipID uuid.UUID `gorm:"column:school_membership_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_membership_id"`

	// Scope/Relasi
	SchoolMembershipSchoolID uuid.UUID  `gorm:"column:school_membership_school_id;type:uuid;not null;index;uniqueIndex:uq_school_membership_school_user" json:"school_membership_school_id"`
	SchoolMembershipUserID   *uuid.UUID `gorm:"column:school_membership_user_id;type:uuid;index;uniqueIndex:uq_school_membership_school_user" json:"school_membership_user_id,omitempty"`

	// Role & status — status hanya berubah lewat accept/reject undangan,
	// tidak pernah lewat edit generik.
	SchoolMembershipRole   MemberRole   `gorm:"column:school_membership_role;type:member_role_enum;not null;default:'teacher'" json:"school_membership_role"`
	SchoolMembershipStatus MemberStatus `gorm:"column:school_membership_status;type:member_status_enum;not null;default:'pending'" json:"school_membership_status"`

	// Snapshot kontak saat diundang
	SchoolMembershipUserNameSnapshot  *string `gorm:"column:school_membership_user_name_snapshot;type:varchar(80)" json:"school_membership_user_name_snapshot,omitempty"`
	SchoolMembershipUserEmailSnapshot *string `gorm:"column:school_membership_user_email_snapshot;type:varchar(255)" json:"school_membership_user_email_snapshot,omitempty"`
	SchoolMembershipUserPhoneSnapshot *string `gorm:"column:school_membership_user_phone_snapshot;type:varchar(30)" json:"school_membership_user_phone_snapshot,omitempty"`
	SchoolMembershipUserPhotoSnapshot *string `gorm:"column:school_membership_user_photo_snapshot;type:text" json:"school_membership_user_photo_snapshot,omitempty"`

	// Audit & soft delete
	SchoolMembershipCreatedAt time.Time      `gorm:"column:school_membership_created_at;autoCreateTime" json:"school_membership_created_at"`
	SchoolMembershipUpdatedAt time.Time      `gorm:"column:school_membership_updated_at;autoUpdateTime" json:"school_membership_updated_at"`
	SchoolMembershipDeletedAt gorm.DeletedAt `gorm:"column:school_membership_deleted_at;index" json:"school_membership_deleted_at,omitempty"`
}

func (SchoolMembershipModel) TableName() string { return "school_memberships" }

// IsAccepted: anggota aktif (satu-satunya status yang lolos validateAccess)
func (m *SchoolMembershipModel) IsAccepted() bool {
	return m.SchoolMembershipStatus == MemberStatusAccept
}

func (m *SchoolMembershipModel) IsAdmin() bool {
	return m.SchoolMembershipRole == MemberRoleAdmin
}
