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
   Enum: school_plan_enum
========================= */

type SchoolPlan string

const (
	SchoolPlanFree       SchoolPlan = "free"
	SchoolPlanPremium    SchoolPlan = "premium"
	SchoolPlanEnterprise SchoolPlan = "enterprise"
)

var validSchoolPlan = map[SchoolPlan]struct{}{
	SchoolPlanFree:       {},
	SchoolPlanPremium:    {},
	SchoolPlanEnterprise: {},
}

func (p SchoolPlan) String() string { return string(p) }
func (p SchoolPlan) Valid() bool {
	_, ok := validSchoolPlan[p]
	return ok
}

// DB round-trip (enum)
func (p SchoolPlan) Value() (driver.Value, error) {
	if p == "" {
		return nil, nil
	}
	if !p.Valid() {
		return nil, fmt.Errorf("invalid school_plan value: %q", p)
	}
	return string(p), nil
}

func (p *SchoolPlan) Scan(value any) error {
	if value == nil {
		*p = ""
		return nil
	}
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("unsupported Scan type for SchoolPlan: %T", value)
	}
	pv := SchoolPlan(strings.ToLower(strings.TrimSpace(s)))
	if pv != "" && !pv.Valid() {
		return fmt.Errorf("invalid school_plan value from DB: %q", s)
	}
	*p = pv
	return nil
}

/* =========================
   Model: schools
========================= */

type SchoolModel struct {
	// PK
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_id"`

	// Identitas
	SchoolName     string  `gorm:"column:school_name;type:varchar(100);not null" json:"school_name"`
	SchoolSlug     string  `gorm:"column:school_slug;type:varchar(100);uniqueIndex;not null" json:"school_slug"`
	SchoolBioShort *string `gorm:"column:school_bio_short;type:text" json:"school_bio_short,omitempty"`
	SchoolLocation *string `gorm:"column:school_location;type:text" json:"school_location,omitempty"`
	SchoolLogoURL  *string `gorm:"column:school_logo_url;type:text" json:"school_logo_url,omitempty"`

	// Pembuat sekolah. Bukan membership — sekolah lahir tanpa anggota;
	// creator memakai ini untuk mengundang admin pertama (bootstrap).
	SchoolCreatedBy uuid.UUID `gorm:"column:school_created_by;type:uuid;not null" json:"school_created_by"`

	// Plan & limits — diubah HANYA lewat operasi upgrade/downgrade plan,
	// tidak pernah oleh CRUD resource biasa.
	SchoolPlan               SchoolPlan `gorm:"column:school_plan;type:school_plan_enum;not null;default:'free'" json:"school_plan"`
	SchoolLimitMemberNumber  int        `gorm:"column:school_limit_member_number;not null;default:2" json:"school_limit_member_number"`
	SchoolLimitClassNumber   int        `gorm:"column:school_limit_class_number;not null;default:3" json:"school_limit_class_number"`
	SchoolLimitSubjectNumber int        `gorm:"column:school_limit_subject_number;not null;default:3" json:"school_limit_subject_number"`
	SchoolLimitStorageBytes  int64      `gorm:"column:school_limit_storage_bytes;not null;default:16106127360" json:"school_limit_storage_bytes"`
	SchoolUsedStorageBytes   int64      `gorm:"column:school_used_storage_bytes;not null;default:0" json:"school_used_storage_bytes"`

	// Billing metadata (Midtrans)
	SchoolPlanPriceID        *string    `gorm:"column:school_plan_price_id;type:varchar(100)" json:"school_plan_price_id,omitempty"`
	SchoolPlanSubscriptionID *string    `gorm:"column:school_plan_subscription_id;type:varchar(100)" json:"school_plan_subscription_id,omitempty"`
	SchoolPlanExpiresAt      *time.Time `gorm:"column:school_plan_expires_at;type:timestamptz" json:"school_plan_expires_at,omitempty"`

	// Status
	SchoolIsActive bool `gorm:"column:school_is_active;not null;default:true" json:"school_is_active"`

	// Audit & soft delete
	SchoolCreatedAt time.Time      `gorm:"column:school_created_at;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"column:school_updated_at;autoUpdateTime" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string { return "schools" }
