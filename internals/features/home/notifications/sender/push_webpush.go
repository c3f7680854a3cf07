package sender

import (
	"context"
	"fmt"
	"log"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/bytedance/sonic"

	"sekolahku_backend/internals/features/home/notifications/model"
	"sekolahku_backend/internals/features/home/notifications/service"
)

// WebPushSender mengirim Web Push (VAPID) ke endpoint browser.
// Tanpa VAPID key pair dia jadi no-op.
type WebPushSender struct {
	vapidPublicKey  string
	vapidPrivateKey string
	subscriber      string // mailto: kontak operator, diwajibkan spec VAPID
	enabled         bool
}

func NewWebPushSender(vapidPublicKey, vapidPrivateKey, subscriber string) *WebPushSender {
	enabled := vapidPublicKey != "" && vapidPrivateKey != ""
	if !enabled {
		log.Printf("[WARN] VAPID keys kosong — push sender jalan sebagai no-op")
	}
	return &WebPushSender{
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		subscriber:      subscriber,
		enabled:         enabled,
	}
}

type subscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

func (s *WebPushSender) Send(ctx context.Context, sub model.PushSubscriptionModel, msg service.PushMessage) error {
	if !s.enabled {
		return nil
	}

	var keys subscriptionKeys
	if err := sonic.Unmarshal(sub.PushSubscriptionKeys, &keys); err != nil {
		// keys rusak tidak akan pernah valid lagi — biarkan di-prune
		return fmt.Errorf("decode subscription keys: %w", service.ErrSubscriptionGone)
	}

	target := &webpush.Subscription{
		Endpoint: sub.PushSubscriptionEndpoint,
		Keys: webpush.Keys{
			P256dh: keys.P256dh,
			Auth:   keys.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, msg.PushPayload(), target, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.vapidPublicKey,
		VAPIDPrivateKey: s.vapidPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("webpush send: %w", err)
	}
	defer resp.Body.Close()

	// 404/410 = endpoint sudah tidak terdaftar di push service
	if resp.StatusCode == 404 || resp.StatusCode == 410 {
		return fmt.Errorf("endpoint status %d: %w", resp.StatusCode, service.ErrSubscriptionGone)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webpush send: status %d", resp.StatusCode)
	}
	return nil
}
