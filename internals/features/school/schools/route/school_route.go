package route

import (
	"github.com/gofiber/fiber/v2"

	schoolctrl "sekolahku_backend/internals/features/school/schools/controller"
)

func SchoolUserRoutes(r fiber.Router, h *schoolctrl.SchoolController) {
	g := r.Group("/schools")

	g.Post("/", h.Create)
	g.Get("/slug/:slug", h.GetBySlug)
	g.Get("/:id", h.GetByID)
	g.Delete("/:id", h.Delete)

	// plan lifecycle — satu-satunya jalur perubahan limit
	g.Post("/:id/plan/premium", h.UpgradeToPremium)
	g.Post("/:id/plan/enterprise", h.UpgradeToEnterprise)
	g.Post("/:id/plan/free", h.DowngradeToFree)
}
