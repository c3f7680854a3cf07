package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	// PK
	SubjectID uuid.UUID `gorm:"column:subject_id;type:uuid;default:gen_random_uuid();primaryKey" json:"subject_id"`

	// Scope/Relasi
	SubjectSchoolID uuid.UUID `gorm:"column:subject_school_id;type:uuid;not null;index" json:"subject_school_id"`

	// Identitas
	SubjectName string  `gorm:"column:subject_name;type:varchar(100);not null" json:"subject_name"`
	SubjectSlug string  `gorm:"column:subject_slug;type:varchar(100);not null;index" json:"subject_slug"`
	SubjectCode *string `gorm:"column:subject_code;type:varchar(30)" json:"subject_code,omitempty"`
	SubjectDesc *string `gorm:"column:subject_desc;type:text" json:"subject_desc,omitempty"`

	// Pembuat subject — di-seed jadi ACCEPT+ADMIN di subject_memberships
	SubjectCreatedBy uuid.UUID `gorm:"column:subject_created_by;type:uuid;not null" json:"subject_created_by"`

	SubjectIsActive bool `gorm:"column:subject_is_active;not null;default:true" json:"subject_is_active"`

	// Audit & soft delete
	SubjectCreatedAt time.Time      `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"column:subject_updated_at;autoUpdateTime" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"subject_deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }
