package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/subjects/dto"
	"sekolahku_backend/internals/features/school/subjects/service"
	helper "sekolahku_backend/internals/helpers"
)

/* ================= Controller & Constructor ================= */

type SubjectController struct {
	Service *service.SubjectService
}

func NewSubjectController(svc *service.SubjectService) *SubjectController {
	return &SubjectController{Service: svc}
}

var validate = validator.New()

/* ================= Handlers ================= */

// POST /api/u/subjects
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	creatorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	subj, err := ctl.Service.Create(c.Context(), creatorID, service.CreateSubjectInput{
		SchoolID: req.SubjectSchoolID,
		Name:     req.SubjectName,
		Code:     req.SubjectCode,
		Desc:     req.SubjectDesc,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "subject created", dto.NewSubjectResponse(subj))
}

// GET /api/u/schools/:school_id/subjects
func (ctl *SubjectController) ListBySchool(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	schoolID, err := uuid.Parse(c.Params("school_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	p := helper.ResolvePaging(c, 20, 200)
	subjects, total, err := ctl.Service.List(c.Context(), requesterID, schoolID, p.Limit, p.Offset)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "subjects", dto.NewSubjectResponses(subjects), helper.BuildPagination(total, p))
}

// DELETE /api/u/subjects/:id
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	subjectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	if err := ctl.Service.Delete(c.Context(), requesterID, subjectID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "subject deleted", nil)
}
