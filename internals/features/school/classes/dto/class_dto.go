package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/classes/model"
)

/* ========== REQUEST DTOs ========== */

type CreateClassRequest struct {
	ClassSchoolID uuid.UUID `json:"class_school_id" form:"class_school_id" validate:"required"`
	ClassName     string    `json:"class_name"      form:"class_name"      validate:"required,min=2,max=100"`
	ClassLevel    *string   `json:"class_level"     form:"class_level"     validate:"omitempty,max=30"`
	ClassDesc     *string   `json:"class_desc"      form:"class_desc"`
}

/* ========== RESPONSE DTO ========== */

type ClassResponse struct {
	ClassID       uuid.UUID `json:"class_id"`
	ClassSchoolID uuid.UUID `json:"class_school_id"`

	ClassName  string  `json:"class_name"`
	ClassSlug  string  `json:"class_slug"`
	ClassLevel *string `json:"class_level,omitempty"`
	ClassDesc  *string `json:"class_desc,omitempty"`

	ClassIsActive bool `json:"class_is_active"`

	ClassCreatedAt time.Time `json:"class_created_at"`
	ClassUpdatedAt time.Time `json:"class_updated_at"`
}

/* ========== HELPER: KONVERSI MODEL -> DTO ========== */

func NewClassResponse(m *model.ClassModel) *ClassResponse {
	if m == nil {
		return nil
	}
	return &ClassResponse{
		ClassID:        m.ClassID,
		ClassSchoolID:  m.ClassSchoolID,
		ClassName:      m.ClassName,
		ClassSlug:      m.ClassSlug,
		ClassLevel:     m.ClassLevel,
		ClassDesc:      m.ClassDesc,
		ClassIsActive:  m.ClassIsActive,
		ClassCreatedAt: m.ClassCreatedAt,
		ClassUpdatedAt: m.ClassUpdatedAt,
	}
}

func NewClassResponses(ms []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewClassResponse(&ms[i]))
	}
	return out
}
