package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NotificationModel adalah arsip broadcast per sekolah —
// delivery sebenarnya jalan lewat push + email fan-out.
type NotificationModel struct {
	NotificationID        uuid.UUID      `gorm:"column:notification_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_id"`
	NotificationSchoolID  uuid.UUID      `gorm:"column:notification_school_id;type:uuid;not null;index" json:"notification_school_id"`
	NotificationTitle     string         `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationBody      string         `gorm:"column:notification_body;type:text" json:"notification_body"`
	NotificationURL       *string        `gorm:"column:notification_url;type:text" json:"notification_url,omitempty"`
	NotificationTags      pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationCreatedAt time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }
