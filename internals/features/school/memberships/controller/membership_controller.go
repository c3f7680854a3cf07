package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/memberships/dto"
	"sekolahku_backend/internals/features/school/memberships/model"
	"sekolahku_backend/internals/features/school/memberships/service"
	helper "sekolahku_backend/internals/helpers"
)

/* ================= Controller & Constructor ================= */

type MembershipController struct {
	Service *service.MembershipService
}

func NewMembershipController(svc *service.MembershipService) *MembershipController {
	return &MembershipController{Service: svc}
}

// single validator instance for this package (tidak perlu di-inject)
var validate = validator.New()

/* ================= Handlers ================= */

// POST /api/u/memberships/invite
func (ctl *MembershipController) Invite(c *fiber.Ctx) error {
	inviterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.InviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.Invite(c.Context(), req.SchoolID, inviterID, req.InviteeEmail, model.MemberRole(req.Role))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "invitation sent", dto.NewMembershipResponse(m))
}

// GET /api/u/schools/:school_id/members
func (ctl *MembershipController) ListBySchool(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	schoolID, err := uuid.Parse(c.Params("school_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	p := helper.ResolvePaging(c, 20, 200)
	members, total, err := ctl.Service.ListBySchool(c.Context(), requesterID, schoolID, p.Limit, p.Offset)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "members", dto.NewMembershipResponses(members), helper.BuildPagination(total, p))
}

// POST /api/u/memberships/:id/respond
func (ctl *MembershipController) Respond(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid membership id")
	}

	var req dto.RespondInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Service.RespondToInvitation(c.Context(), membershipID, userID, model.MemberStatus(req.Decision))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if m == nil {
		// reject: record sudah dihapus
		return helper.JsonDeleted(c, "invitation declined", nil)
	}
	return helper.JsonUpdated(c, "invitation accepted", dto.NewMembershipResponse(m))
}

// PUT /api/u/memberships/:id
func (ctl *MembershipController) Update(c *fiber.Ctx) error {
	editorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid membership id")
	}

	var req dto.UpdateMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	role, name, phone := req.ToPatch()
	m, err := ctl.Service.UpdateRole(c.Context(), membershipID, editorID, service.UpdateRolePatch{
		Role:  role,
		Name:  name,
		Phone: phone,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "membership updated", dto.NewMembershipResponse(m))
}

// DELETE /api/u/memberships/:id
func (ctl *MembershipController) Remove(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid membership id")
	}

	if err := ctl.Service.Remove(c.Context(), membershipID, requesterID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "member removed", nil)
}
