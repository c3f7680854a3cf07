package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/schools/model"
)

/* ========== REQUEST DTOs ========== */

type CreateSchoolRequest struct {
	SchoolName     string  `json:"school_name"      form:"school_name"      validate:"required,min=3,max=100"`
	SchoolBioShort *string `json:"school_bio_short" form:"school_bio_short" validate:"omitempty,max=300"`
	SchoolLocation *string `json:"school_location"  form:"school_location"  validate:"omitempty,max=300"`
}

// UpgradePremiumRequest: metadata billing datang dari checkout flow
// klien, bukan dari webhook — server memverifikasi ulang lewat provider
// saat lapse-check.
type UpgradePremiumRequest struct {
	PlanPriceID        string    `json:"plan_price_id"        form:"plan_price_id"        validate:"required,max=100"`
	PlanSubscriptionID string    `json:"plan_subscription_id" form:"plan_subscription_id" validate:"required,max=100"`
	PlanExpiresAt      time.Time `json:"plan_expires_at"      form:"plan_expires_at"      validate:"required"`
}

type UpgradeEnterpriseRequest struct {
	MaxMembers         int       `json:"max_members"          form:"max_members"          validate:"required,min=1"`
	PlanPriceID        string    `json:"plan_price_id"        form:"plan_price_id"        validate:"required,max=100"`
	PlanSubscriptionID string    `json:"plan_subscription_id" form:"plan_subscription_id" validate:"required,max=100"`
	PlanExpiresAt      time.Time `json:"plan_expires_at"      form:"plan_expires_at"      validate:"required"`
}

/* ========== RESPONSE DTO ========== */

type SchoolResponse struct {
	SchoolID uuid.UUID `json:"school_id"`

	SchoolName     string  `json:"school_name"`
	SchoolSlug     string  `json:"school_slug"`
	SchoolBioShort *string `json:"school_bio_short,omitempty"`
	SchoolLocation *string `json:"school_location,omitempty"`
	SchoolLogoURL  *string `json:"school_logo_url,omitempty"`

	SchoolPlan               string     `json:"school_plan"`
	SchoolLimitMemberNumber  int        `json:"school_limit_member_number"`
	SchoolLimitClassNumber   int        `json:"school_limit_class_number"`
	SchoolLimitSubjectNumber int        `json:"school_limit_subject_number"`
	SchoolLimitStorageBytes  int64      `json:"school_limit_storage_bytes"`
	SchoolUsedStorageBytes   int64      `json:"school_used_storage_bytes"`
	SchoolPlanExpiresAt      *time.Time `json:"school_plan_expires_at,omitempty"`

	SchoolIsActive  bool      `json:"school_is_active"`
	SchoolCreatedBy uuid.UUID `json:"school_created_by"`

	SchoolCreatedAt time.Time `json:"school_created_at"`
	SchoolUpdatedAt time.Time `json:"school_updated_at"`
}

/* ========== HELPER: KONVERSI MODEL -> DTO ========== */

func NewSchoolResponse(m *model.SchoolModel) *SchoolResponse {
	if m == nil {
		return nil
	}
	return &SchoolResponse{
		SchoolID:                 m.SchoolID,
		SchoolName:               m.SchoolName,
		SchoolSlug:               m.SchoolSlug,
		SchoolBioShort:           m.SchoolBioShort,
		SchoolLocation:           m.SchoolLocation,
		SchoolLogoURL:            m.SchoolLogoURL,
		SchoolPlan:               m.SchoolPlan.String(),
		SchoolLimitMemberNumber:  m.SchoolLimitMemberNumber,
		SchoolLimitClassNumber:   m.SchoolLimitClassNumber,
		SchoolLimitSubjectNumber: m.SchoolLimitSubjectNumber,
		SchoolLimitStorageBytes:  m.SchoolLimitStorageBytes,
		SchoolUsedStorageBytes:   m.SchoolUsedStorageBytes,
		SchoolPlanExpiresAt:      m.SchoolPlanExpiresAt,
		SchoolIsActive:           m.SchoolIsActive,
		SchoolCreatedBy:          m.SchoolCreatedBy,
		SchoolCreatedAt:          m.SchoolCreatedAt,
		SchoolUpdatedAt:          m.SchoolUpdatedAt,
	}
}
