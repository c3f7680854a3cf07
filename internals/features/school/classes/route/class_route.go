package route

import (
	"github.com/gofiber/fiber/v2"

	classctrl "sekolahku_backend/internals/features/school/classes/controller"
)

func ClassUserRoutes(r fiber.Router, h *classctrl.ClassController) {
	g := r.Group("/classes")

	g.Post("/", h.Create)
	g.Delete("/:id", h.Delete)

	r.Get("/schools/:school_id/classes", h.ListBySchool)
}
