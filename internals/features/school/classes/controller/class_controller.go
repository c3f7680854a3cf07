package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/classes/dto"
	"sekolahku_backend/internals/features/school/classes/service"
	helper "sekolahku_backend/internals/helpers"
)

/* ================= Controller & Constructor ================= */

type ClassController struct {
	Service *service.ClassService
}

func NewClassController(svc *service.ClassService) *ClassController {
	return &ClassController{Service: svc}
}

var validate = validator.New()

/* ================= Handlers ================= */

// POST /api/u/classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	creatorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	cls, err := ctl.Service.Create(c.Context(), creatorID, service.CreateClassInput{
		SchoolID: req.ClassSchoolID,
		Name:     req.ClassName,
		Level:    req.ClassLevel,
		Desc:     req.ClassDesc,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "class created", dto.NewClassResponse(cls))
}

// GET /api/u/schools/:school_id/classes
func (ctl *ClassController) ListBySchool(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	schoolID, err := uuid.Parse(c.Params("school_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	p := helper.ResolvePaging(c, 20, 200)
	classes, total, err := ctl.Service.List(c.Context(), requesterID, schoolID, p.Limit, p.Offset)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "classes", dto.NewClassResponses(classes), helper.BuildPagination(total, p))
}

// DELETE /api/u/classes/:id
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid class id")
	}

	if err := ctl.Service.Delete(c.Context(), requesterID, classID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "class deleted", nil)
}
