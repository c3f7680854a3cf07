package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users.
// Auth (password, OAuth) hidup di service lain — di sini users hanya
// directory untuk resolve undangan by email.
type UserModel struct {
	UserID        uuid.UUID      `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserName      string         `gorm:"column:user_name;size:80;not null" json:"user_name"`
	UserEmail     string         `gorm:"column:user_email;size:255;uniqueIndex;not null" json:"user_email"`
	UserPhone     *string        `gorm:"column:user_phone;size:30" json:"user_phone,omitempty"`
	UserPhotoURL  *string        `gorm:"column:user_photo_url;type:text" json:"user_photo_url,omitempty"`
	UserIsActive  bool           `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`
	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
