package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PushSubscriptionModel menyimpan Web Push subscription per user/device.
// Keys (p256dh + auth) disimpan apa adanya sebagai JSONB.
// Subscription yang ditolak permanen oleh transport (404/410) di-prune
// oleh fan-out service.
type PushSubscriptionModel struct {
	PushSubscriptionID       uuid.UUID      `gorm:"column:push_subscription_id;type:uuid;default:gen_random_uuid();primaryKey" json:"push_subscription_id"`
	PushSubscriptionUserID   uuid.UUID      `gorm:"column:push_subscription_user_id;type:uuid;not null;index;uniqueIndex:uq_push_subscription_user_endpoint" json:"push_subscription_user_id"`
	PushSubscriptionEndpoint string         `gorm:"column:push_subscription_endpoint;type:text;not null;uniqueIndex:uq_push_subscription_user_endpoint" json:"push_subscription_endpoint"`
	PushSubscriptionKeys     datatypes.JSON `gorm:"column:push_subscription_keys;type:jsonb;not null" json:"push_subscription_keys"`
	PushSubscriptionUA       *string        `gorm:"column:push_subscription_ua;type:varchar(255)" json:"push_subscription_ua,omitempty"`

	PushSubscriptionCreatedAt time.Time      `gorm:"column:push_subscription_created_at;autoCreateTime" json:"push_subscription_created_at"`
	PushSubscriptionUpdatedAt time.Time      `gorm:"column:push_subscription_updated_at;autoUpdateTime" json:"push_subscription_updated_at"`
	PushSubscriptionDeletedAt gorm.DeletedAt `gorm:"column:push_subscription_deleted_at;index" json:"push_subscription_deleted_at,omitempty"`
}

func (PushSubscriptionModel) TableName() string { return "push_subscriptions" }
