package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	// PK
	ClassID uuid.UUID `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`

	// Scope/Relasi
	ClassSchoolID uuid.UUID `gorm:"column:class_school_id;type:uuid;not null;index" json:"class_school_id"`

	// Identitas
	ClassName  string  `gorm:"column:class_name;type:varchar(100);not null" json:"class_name"`
	ClassSlug  string  `gorm:"column:class_slug;type:varchar(100);not null;index" json:"class_slug"`
	ClassLevel *string `gorm:"column:class_level;type:varchar(30)" json:"class_level,omitempty"`
	ClassDesc  *string `gorm:"column:class_desc;type:text" json:"class_desc,omitempty"`

	ClassIsActive bool `gorm:"column:class_is_active;not null;default:true" json:"class_is_active"`

	// Audit & soft delete
	ClassCreatedAt time.Time      `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }
