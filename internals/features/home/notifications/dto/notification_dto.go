package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/features/home/notifications/model"
)

/* ========== REQUEST DTOs ========== */

// RegisterPushSubscriptionRequest: payload PushSubscription.toJSON()
// dari browser — keys diteruskan apa adanya.
type RegisterPushSubscriptionRequest struct {
	Endpoint string `json:"endpoint" form:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth"   validate:"required"`
	} `json:"keys" validate:"required"`
	UserAgent *string `json:"user_agent" form:"user_agent" validate:"omitempty,max=255"`
}

func (r *RegisterPushSubscriptionRequest) ToModel(userID uuid.UUID, rawKeys []byte) *model.PushSubscriptionModel {
	return &model.PushSubscriptionModel{
		PushSubscriptionUserID:   userID,
		PushSubscriptionEndpoint: r.Endpoint,
		PushSubscriptionKeys:     datatypes.JSON(rawKeys),
		PushSubscriptionUA:       r.UserAgent,
	}
}

/* ========== RESPONSE DTOs ========== */

type PushSubscriptionResponse struct {
	PushSubscriptionID        uuid.UUID `json:"push_subscription_id"`
	PushSubscriptionEndpoint  string    `json:"push_subscription_endpoint"`
	PushSubscriptionCreatedAt time.Time `json:"push_subscription_created_at"`
}

func NewPushSubscriptionResponse(m *model.PushSubscriptionModel) *PushSubscriptionResponse {
	if m == nil {
		return nil
	}
	return &PushSubscriptionResponse{
		PushSubscriptionID:        m.PushSubscriptionID,
		PushSubscriptionEndpoint:  m.PushSubscriptionEndpoint,
		PushSubscriptionCreatedAt: m.PushSubscriptionCreatedAt,
	}
}

type NotificationResponse struct {
	NotificationID        uuid.UUID `json:"notification_id"`
	NotificationSchoolID  uuid.UUID `json:"notification_school_id"`
	NotificationTitle     string    `json:"notification_title"`
	NotificationBody      string    `json:"notification_body"`
	NotificationURL       *string   `json:"notification_url,omitempty"`
	NotificationTags      []string  `json:"notification_tags"`
	NotificationCreatedAt time.Time `json:"notification_created_at"`
}

func NewNotificationResponse(m *model.NotificationModel) *NotificationResponse {
	if m == nil {
		return nil
	}
	return &NotificationResponse{
		NotificationID:        m.NotificationID,
		NotificationSchoolID:  m.NotificationSchoolID,
		NotificationTitle:     m.NotificationTitle,
		NotificationBody:      m.NotificationBody,
		NotificationURL:       m.NotificationURL,
		NotificationTags:      m.NotificationTags,
		NotificationCreatedAt: m.NotificationCreatedAt,
	}
}

func NewNotificationResponses(ms []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewNotificationResponse(&ms[i]))
	}
	return out
}
