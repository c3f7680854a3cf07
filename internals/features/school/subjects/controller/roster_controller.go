package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	membershipModel "sekolahku_backend/internals/features/school/memberships/model"
	"sekolahku_backend/internals/features/school/subjects/dto"
	"sekolahku_backend/internals/features/school/subjects/service"
	helper "sekolahku_backend/internals/helpers"
)

/* ================= Controller & Constructor ================= */

type RosterController struct {
	Service *service.RosterService
}

func NewRosterController(svc *service.RosterService) *RosterController {
	return &RosterController{Service: svc}
}

/* ================= Handlers ================= */

// POST /api/u/subjects/roster/invite
func (ctl *RosterController) Invite(c *fiber.Ctx) error {
	inviterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.InviteRosterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.Invite(c.Context(), req.SubjectID, inviterID, req.InviteeEmail, membershipModel.MemberRole(req.Role))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "roster invitation sent", dto.NewRosterResponse(m))
}

// GET /api/u/subjects/:subject_id/roster
func (ctl *RosterController) ListBySubject(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	subjectID, err := uuid.Parse(c.Params("subject_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	p := helper.ResolvePaging(c, 20, 200)
	entries, total, err := ctl.Service.ListBySubject(c.Context(), requesterID, subjectID, p.Limit, p.Offset)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "roster", dto.NewRosterResponses(entries), helper.BuildPagination(total, p))
}

// POST /api/u/subjects/roster/:id/respond
func (ctl *RosterController) Respond(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid roster entry id")
	}

	var req dto.RespondRosterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.RespondToInvitation(c.Context(), entryID, userID, membershipModel.MemberStatus(req.Decision))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if m == nil {
		return helper.JsonDeleted(c, "roster invitation declined", nil)
	}
	return helper.JsonUpdated(c, "roster invitation accepted", dto.NewRosterResponse(m))
}

// DELETE /api/u/subjects/roster/:id
func (ctl *RosterController) Remove(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid roster entry id")
	}

	if err := ctl.Service.Remove(c.Context(), entryID, requesterID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "roster entry removed", nil)
}
