// file: internals/route/index.go
package routes

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/finance/billing"
	notifController "sekolahku_backend/internals/features/home/notifications/controller"
	notifRepo "sekolahku_backend/internals/features/home/notifications/repository"
	notifRoute "sekolahku_backend/internals/features/home/notifications/route"
	"sekolahku_backend/internals/features/home/notifications/sender"
	notifService "sekolahku_backend/internals/features/home/notifications/service"
	classController "sekolahku_backend/internals/features/school/classes/controller"
	classRepo "sekolahku_backend/internals/features/school/classes/repository"
	classRoute "sekolahku_backend/internals/features/school/classes/route"
	classService "sekolahku_backend/internals/features/school/classes/service"
	membershipController "sekolahku_backend/internals/features/school/memberships/controller"
	membershipRepo "sekolahku_backend/internals/features/school/memberships/repository"
	membershipRoute "sekolahku_backend/internals/features/school/memberships/route"
	membershipService "sekolahku_backend/internals/features/school/memberships/service"
	schoolController "sekolahku_backend/internals/features/school/schools/controller"
	schoolRepo "sekolahku_backend/internals/features/school/schools/repository"
	schoolRoute "sekolahku_backend/internals/features/school/schools/route"
	schoolService "sekolahku_backend/internals/features/school/schools/service"
	subjectController "sekolahku_backend/internals/features/school/subjects/controller"
	subjectRepo "sekolahku_backend/internals/features/school/subjects/repository"
	subjectRoute "sekolahku_backend/internals/features/school/subjects/route"
	subjectService "sekolahku_backend/internals/features/school/subjects/service"
	userRepo "sekolahku_backend/internals/features/users/users/repository"
	helper "sekolahku_backend/internals/helpers"
	authMiddleware "sekolahku_backend/internals/middlewares/auth_school"
)

var startTime time.Time

// SetupRoutes merakit seluruh dependency graph secara eksplisit:
// repo → validator → fan-out → service → controller → route.
// Kembalikan FanoutService supaya graceful shutdown bisa menunggu
// broadcast in-flight.
func SetupRoutes(app *fiber.App, db *gorm.DB) *notifService.FanoutService {
	startTime = time.Now()

	// ===================== REPOSITORIES =====================
	users := userRepo.NewUserRepository(db)
	schools := schoolRepo.NewSchoolRepository(db)
	members := membershipRepo.NewMembershipRepository(db)
	subjects := subjectRepo.NewSubjectRepository(db)
	roster := subjectRepo.NewRosterRepository(db)
	classes := classRepo.NewClassRepository(db)
	notifications := notifRepo.NewNotificationRepository(db)
	pushSubs := notifRepo.NewPushSubscriptionRepository(db)

	// ===================== SHARED CAPABILITIES =====================
	accessValidator := membershipService.NewAccessValidator(members, roster, subjects)

	mailSender := sender.NewSendGridSender(configs.SendgridAPIKey, configs.MailFromName, configs.MailFromEmail)
	pushSender := sender.NewWebPushSender(configs.VapidPublicKey, configs.VapidPrivateKey, configs.VapidSubscriber)
	fanout := notifService.NewFanoutService(members, pushSubs, notifications, mailSender, pushSender)

	billingChecker := billing.NewMidtransChecker(configs.MidtransServerKey, configs.MidtransUseProd)

	// ===================== SERVICES =====================
	membershipSvc := membershipService.NewMembershipService(
		members, schools, users, accessValidator, fanout, mailSender, configs.FrontendBaseURL)

	rosterSvc := subjectService.NewRosterService(roster, subjects, users, accessValidator, fanout)

	subjectSvc := subjectService.NewSubjectService(
		subjects, rosterSvc, roster, schools, accessValidator, fanout,
		func(ctx context.Context, schoolID uuid.UUID, base string) (string, error) {
			return helper.GenerateUniqueSlug(db.WithContext(ctx), helper.SlugOptions{
				Table:            "subjects",
				SlugColumn:       "subject_slug",
				SoftDeleteColumn: "subject_deleted_at",
				Filters:          map[string]any{"subject_school_id": schoolID},
				DefaultBase:      "subject",
			}, base)
		})

	classSvc := classService.NewClassService(
		classes, schools, accessValidator, fanout,
		func(ctx context.Context, schoolID uuid.UUID, base string) (string, error) {
			return helper.GenerateUniqueSlug(db.WithContext(ctx), helper.SlugOptions{
				Table:            "classes",
				SlugColumn:       "class_slug",
				SoftDeleteColumn: "class_deleted_at",
				Filters:          map[string]any{"class_school_id": schoolID},
				DefaultBase:      "class",
			}, base)
		})

	schoolSvc := schoolService.NewSchoolService(
		schools, members, users, accessValidator, billingChecker,
		[]schoolService.ResourceCleaner{classes, roster, subjects},
		func(ctx context.Context, base string) (string, error) {
			return helper.GenerateUniqueSlug(db.WithContext(ctx), helper.SlugOptions{
				Table:            "schools",
				SlugColumn:       "school_slug",
				SoftDeleteColumn: "school_deleted_at",
				DefaultBase:      "school",
			}, base)
		})

	// ===================== CONTROLLERS =====================
	membershipCtl := membershipController.NewMembershipController(membershipSvc)
	subjectCtl := subjectController.NewSubjectController(subjectSvc)
	rosterCtl := subjectController.NewRosterController(rosterSvc)
	classCtl := classController.NewClassController(classSvc)
	schoolCtl := schoolController.NewSchoolController(schoolSvc)
	notifCtl := notifController.NewNotificationController(notifications, pushSubs, accessValidator)

	// ===================== ROUTES =====================
	BaseRoutes(app, db)

	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	schoolRoute.SchoolUserRoutes(private, schoolCtl)
	membershipRoute.MembershipUserRoutes(private, membershipCtl)
	subjectRoute.SubjectUserRoutes(private, subjectCtl, rosterCtl)
	classRoute.ClassUserRoutes(private, classCtl)
	notifRoute.NotificationUserRoutes(private, notifCtl)

	return fanout
}
