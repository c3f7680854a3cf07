package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/memberships/model"
)

/* ========== REQUEST DTOs ========== */

// InviteMemberRequest: invitee di-resolve by email, bukan user_id —
// klien tidak perlu tahu UUID user lain.
type InviteMemberRequest struct {
	SchoolID     uuid.UUID `json:"school_id"      form:"school_id"      validate:"required"`
	InviteeEmail string    `json:"invitee_email"  form:"invitee_email"  validate:"required,email"`
	Role         string    `json:"role"           form:"role"           validate:"required,oneof=admin teacher"`
}

type RespondInvitationRequest struct {
	Decision string `json:"decision" form:"decision" validate:"required,oneof=accept reject"`
}

// UpdateMembershipRequest: patch parsial. Status sengaja tidak ada —
// status cuma berubah lewat respond invitation.
type UpdateMembershipRequest struct {
	Role  *string `json:"role"  form:"role"  validate:"omitempty,oneof=admin teacher"`
	Name  *string `json:"name"  form:"name"  validate:"omitempty,min=2,max=80"`
	Phone *string `json:"phone" form:"phone" validate:"omitempty,max=30"`
}

func (r *UpdateMembershipRequest) ToPatch() (role *model.MemberRole, name, phone *string) {
	if r.Role != nil {
		mr := model.MemberRole(*r.Role)
		role = &mr
	}
	return role, r.Name, r.Phone
}

/* ========== RESPONSE DTO ========== */

type MembershipResponse struct {
	SchoolMembershipID       uuid.UUID  `json:"school_membership_id"`
	SchoolMembershipSchoolID uuid.UUID  `json:"school_membership_school_id"`
	SchoolMembershipUserID   *uuid.UUID `json:"school_membership_user_id,omitempty"`

	SchoolMembershipRole   string `json:"school_membership_role"`
	SchoolMembershipStatus string `json:"school_membership_status"`

	SchoolMembershipUserName  *string `json:"school_membership_user_name,omitempty"`
	SchoolMembershipUserEmail *string `json:"school_membership_user_email,omitempty"`
	SchoolMembershipUserPhone *string `json:"school_membership_user_phone,omitempty"`
	SchoolMembershipUserPhoto *string `json:"school_membership_user_photo,omitempty"`

	SchoolMembershipCreatedAt time.Time `json:"school_membership_created_at"`
	SchoolMembershipUpdatedAt time.Time `json:"school_membership_updated_at"`
}

/* ========== HELPER: KONVERSI MODEL -> DTO ========== */

func NewMembershipResponse(m *model.SchoolMembershipModel) *MembershipResponse {
	if m == nil {
		return nil
	}
	return &MembershipResponse{
		SchoolMembershipID:        m.SchoolMembershipID,
		SchoolMembershipSchoolID:  m.SchoolMembershipSchoolID,
		SchoolMembershipUserID:    m.SchoolMembershipUserID,
		SchoolMembershipRole:      m.SchoolMembershipRole.String(),
		SchoolMembershipStatus:    m.SchoolMembershipStatus.String(),
		SchoolMembershipUserName:  m.SchoolMembershipUserNameSnapshot,
		SchoolMembershipUserEmail: m.SchoolMembershipUserEmailSnapshot,
		SchoolMembershipUserPhone: m.SchoolMembershipUserPhoneSnapshot,
		SchoolMembershipUserPhoto: m.SchoolMembershipUserPhotoSnapshot,
		SchoolMembershipCreatedAt: m.SchoolMembershipCreatedAt,
		SchoolMembershipUpdatedAt: m.SchoolMembershipUpdatedAt,
	}
}

func NewMembershipResponses(ms []model.SchoolMembershipModel) []MembershipResponse {
	out := make([]MembershipResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewMembershipResponse(&ms[i]))
	}
	return out
}
