package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/subjects/model"
)

/* ========== REQUEST DTOs ========== */

type InviteRosterRequest struct {
	SubjectID    uuid.UUID `json:"subject_id"     form:"subject_id"     validate:"required"`
	InviteeEmail string    `json:"invitee_email"  form:"invitee_email"  validate:"required,email"`
	Role         string    `json:"role"           form:"role"           validate:"required,oneof=admin teacher"`
}

type RespondRosterRequest struct {
	Decision string `json:"decision" form:"decision" validate:"required,oneof=accept reject"`
}

/* ========== RESPONSE DTO ========== */

type RosterResponse struct {
	SubjectMembershipID        uuid.UUID `json:"subject_membership_id"`
	SubjectMembershipSubjectID uuid.UUID `json:"subject_membership_subject_id"`
	SubjectMembershipSchoolID  uuid.UUID `json:"subject_membership_school_id"`
	SubjectMembershipUserID    uuid.UUID `json:"subject_membership_user_id"`

	SubjectMembershipRole   string `json:"subject_membership_role"`
	SubjectMembershipStatus string `json:"subject_membership_status"`

	SubjectMembershipUserName  *string `json:"subject_membership_user_name,omitempty"`
	SubjectMembershipUserEmail *string `json:"subject_membership_user_email,omitempty"`

	SubjectMembershipCreatedAt time.Time `json:"subject_membership_created_at"`
	SubjectMembershipUpdatedAt time.Time `json:"subject_membership_updated_at"`
}

/* ========== HELPER: KONVERSI MODEL -> DTO ========== */

func NewRosterResponse(m *model.SubjectMembershipModel) *RosterResponse {
	if m == nil {
		return nil
	}
	return &RosterResponse{
		SubjectMembershipID:        m.SubjectMembershipID,
		SubjectMembershipSubjectID: m.SubjectMembershipSubjectID,
		SubjectMembershipSchoolID:  m.SubjectMembershipSchoolID,
		SubjectMembershipUserID:    m.SubjectMembershipUserID,
		SubjectMembershipRole:      m.SubjectMembershipRole.String(),
		SubjectMembershipStatus:    m.SubjectMembershipStatus.String(),
		SubjectMembershipUserName:  m.SubjectMembershipUserNameSnapshot,
		SubjectMembershipUserEmail: m.SubjectMembershipUserEmailSnapshot,
		SubjectMembershipCreatedAt: m.SubjectMembershipCreatedAt,
		SubjectMembershipUpdatedAt: m.SubjectMembershipUpdatedAt,
	}
}

func NewRosterResponses(ms []model.SubjectMembershipModel) []RosterResponse {
	out := make([]RosterResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewRosterResponse(&ms[i]))
	}
	return out
}
