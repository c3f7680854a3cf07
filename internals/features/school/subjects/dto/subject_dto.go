package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/subjects/model"
)

/* ========== REQUEST DTOs ========== */

type CreateSubjectRequest struct {
	SubjectSchoolID uuid.UUID `json:"subject_school_id" form:"subject_school_id" validate:"required"`
	SubjectName     string    `json:"subject_name"      form:"subject_name"      validate:"required,min=2,max=100"`
	SubjectCode     *string   `json:"subject_code"      form:"subject_code"      validate:"omitempty,max=30"`
	SubjectDesc     *string   `json:"subject_desc"      form:"subject_desc"`
}

/* ========== RESPONSE DTO ========== */

type SubjectResponse struct {
	SubjectID       uuid.UUID `json:"subject_id"`
	SubjectSchoolID uuid.UUID `json:"subject_school_id"`

	SubjectName string  `json:"subject_name"`
	SubjectSlug string  `json:"subject_slug"`
	SubjectCode *string `json:"subject_code,omitempty"`
	SubjectDesc *string `json:"subject_desc,omitempty"`

	SubjectCreatedBy uuid.UUID `json:"subject_created_by"`
	SubjectIsActive  bool      `json:"subject_is_active"`

	SubjectCreatedAt time.Time `json:"subject_created_at"`
	SubjectUpdatedAt time.Time `json:"subject_updated_at"`
}

/* ========== HELPER: KONVERSI MODEL -> DTO ========== */

func NewSubjectResponse(m *model.SubjectModel) *SubjectResponse {
	if m == nil {
		return nil
	}
	return &SubjectResponse{
		SubjectID:        m.SubjectID,
		SubjectSchoolID:  m.SubjectSchoolID,
		SubjectName:      m.SubjectName,
		SubjectSlug:      m.SubjectSlug,
		SubjectCode:      m.SubjectCode,
		SubjectDesc:      m.SubjectDesc,
		SubjectCreatedBy: m.SubjectCreatedBy,
		SubjectIsActive:  m.SubjectIsActive,
		SubjectCreatedAt: m.SubjectCreatedAt,
		SubjectUpdatedAt: m.SubjectUpdatedAt,
	}
}

func NewSubjectResponses(ms []model.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewSubjectResponse(&ms[i]))
	}
	return out
}
