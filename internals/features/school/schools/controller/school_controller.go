package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/schools/dto"
	"sekolahku_backend/internals/features/school/schools/service"
	helper "sekolahku_backend/internals/helpers"
)

/* ================= Controller & Constructor ================= */

type SchoolController struct {
	Service *service.SchoolService
}

func NewSchoolController(svc *service.SchoolService) *SchoolController {
	return &SchoolController{Service: svc}
}

var validate = validator.New()

/* ================= Handlers ================= */

// POST /api/u/schools
func (ctl *SchoolController) Create(c *fiber.Ctx) error {
	creatorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	school, err := ctl.Service.Create(c.Context(), creatorID, service.CreateSchoolInput{
		Name:     req.SchoolName,
		BioShort: req.SchoolBioShort,
		Location: req.SchoolLocation,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "school created", dto.NewSchoolResponse(school))
}

// GET /api/u/schools/:id
func (ctl *SchoolController) GetByID(c *fiber.Ctx) error {
	schoolID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	school, err := ctl.Service.GetByID(c.Context(), schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "school", dto.NewSchoolResponse(school))
}

// GET /api/u/schools/slug/:slug
func (ctl *SchoolController) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school slug")
	}

	school, err := ctl.Service.GetBySlug(c.Context(), slug)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "school", dto.NewSchoolResponse(school))
}

// DELETE /api/u/schools/:id
func (ctl *SchoolController) Delete(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	schoolID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	if err := ctl.Service.Delete(c.Context(), requesterID, schoolID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "school deleted", nil)
}
