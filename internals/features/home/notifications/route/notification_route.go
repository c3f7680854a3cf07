package route

import (
	"github.com/gofiber/fiber/v2"

	notifctrl "sekolahku_backend/internals/features/home/notifications/controller"
)

func NotificationUserRoutes(r fiber.Router, h *notifctrl.NotificationController) {
	r.Get("/schools/:school_id/notifications", h.ListBySchool)

	g := r.Group("/push-subscriptions")
	g.Post("/", h.RegisterPushSubscription)
	g.Delete("/", h.UnregisterPushSubscription)
}
