package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/home/notifications/dto"
	"sekolahku_backend/internals/features/home/notifications/repository"
	membershipService "sekolahku_backend/internals/features/school/memberships/service"
	helper "sekolahku_backend/internals/helpers"

	"github.com/bytedance/sonic"
)

/* ================= Controller & Constructor ================= */

type NotificationController struct {
	Notifications *repository.NotificationRepository
	Subscriptions *repository.PushSubscriptionRepository
	Validator     *membershipService.AccessValidator
}

func NewNotificationController(
	notifications *repository.NotificationRepository,
	subscriptions *repository.PushSubscriptionRepository,
	accessValidator *membershipService.AccessValidator,
) *NotificationController {
	return &NotificationController{
		Notifications: notifications,
		Subscriptions: subscriptions,
		Validator:     accessValidator,
	}
}

var validate = validator.New()

/* ================= Handlers ================= */

// GET /api/u/schools/:school_id/notifications
func (ctl *NotificationController) ListBySchool(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	schoolID, err := uuid.Parse(c.Params("school_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school id")
	}

	// arsip notifikasi hanya untuk anggota accepted
	if _, err := ctl.Validator.RequireSchoolAccess(c.Context(), requesterID, schoolID); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Notifications.ListBySchool(c.Context(), schoolID, p.Limit, p.Offset)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "notifications", dto.NewNotificationResponses(rows), helper.BuildPagination(total, p))
}

// POST /api/u/push-subscriptions
func (ctl *NotificationController) RegisterPushSubscription(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.RegisterPushSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rawKeys, err := sonic.Marshal(req.Keys)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid subscription keys")
	}

	m := req.ToModel(userID, rawKeys)
	if err := ctl.Subscriptions.Save(c.Context(), m); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "push subscription registered", dto.NewPushSubscriptionResponse(m))
}

// DELETE /api/u/push-subscriptions
func (ctl *NotificationController) UnregisterPushSubscription(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req struct {
		Endpoint string `json:"endpoint" validate:"required,url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.Subscriptions.DeleteByEndpoint(c.Context(), userID, req.Endpoint); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "push subscription removed", nil)
}
