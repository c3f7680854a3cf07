package route

import (
	"github.com/gofiber/fiber/v2"

	subjectctrl "sekolahku_backend/internals/features/school/subjects/controller"
	"sekolahku_backend/internals/middlewares"
)

func SubjectUserRoutes(r fiber.Router, h *subjectctrl.SubjectController, rh *subjectctrl.RosterController) {
	g := r.Group("/subjects")

	g.Post("/", h.Create)
	g.Delete("/:id", h.Delete)

	// roster pengajar per subject
	g.Post("/roster/invite", middlewares.InviteRateLimiter(), rh.Invite)
	g.Post("/roster/:id/respond", rh.Respond)
	g.Delete("/roster/:id", rh.Remove)
	g.Get("/:subject_id/roster", rh.ListBySubject)

	r.Get("/schools/:school_id/subjects", h.ListBySchool)
}
