package route

import (
	"github.com/gofiber/fiber/v2"

	membershipctrl "sekolahku_backend/internals/features/school/memberships/controller"
	"sekolahku_backend/internals/middlewares"
)

// MembershipUserRoutes: semua endpoint butuh JWT (di-apply di group
// pemanggil). Invite dapat rate limiter ekstra — endpoint ini memicu
// email + fan-out.
func MembershipUserRoutes(r fiber.Router, h *membershipctrl.MembershipController) {
	g := r.Group("/memberships")

	g.Post("/invite", middlewares.InviteRateLimiter(), h.Invite)
	g.Post("/:id/respond", h.Respond)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Remove)

	r.Get("/schools/:school_id/members", h.ListBySchool)
}
