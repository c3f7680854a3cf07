package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/schools/dto"
	helper "sekolahku_backend/internals/helpers"
)

/* ================= Plan handlers ================= */
// Upgrade/downgrade adalah SATU-SATUNYA jalur perubahan plan & limit.

// POST /api/u/schools/:id/plan/premium
func (ctl *SchoolController) UpgradeToPremium(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	schoolID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	var req dto.UpgradePremiumRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	school, err := ctl.Service.UpgradeToPremium(c.Context(), requesterID, schoolID,
		req.PlanPriceID, req.PlanSubscriptionID, req.PlanExpiresAt)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "school upgraded to premium", dto.NewSchoolResponse(school))
}

// POST /api/u/schools/:id/plan/enterprise
func (ctl *SchoolController) UpgradeToEnterprise(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	schoolID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	var req dto.UpgradeEnterpriseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	school, err := ctl.Service.UpgradeToEnterprise(c.Context(), requesterID, schoolID,
		req.MaxMembers, req.PlanPriceID, req.PlanSubscriptionID, req.PlanExpiresAt)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "school upgraded to enterprise", dto.NewSchoolResponse(school))
}

// POST /api/u/schools/:id/plan/free
func (ctl *SchoolController) DowngradeToFree(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	schoolID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	school, err := ctl.Service.DowngradeToFree(c.Context(), requesterID, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "school downgraded to free", dto.NewSchoolResponse(school))
}
