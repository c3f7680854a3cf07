package service

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	membershipModel "sekolahku_backend/internals/features/school/memberships/model"
	"sekolahku_backend/internals/features/school/schools/model"
	userModel "sekolahku_backend/internals/features/users/users/model"
)

const (
	ErrMsgSchoolNotFound        = "school not found"
	ErrMsgOnlyAdminCanEditPlan  = "only a school admin can manage the plan"
	ErrMsgOnlyAdminCanDelete    = "only a school admin can delete the school"
	ErrMsgEnterpriseMemberCount = "enterprise member limit must be at least 1"
)

/* =========================
   Collaborator contracts
========================= */

type SchoolStore interface {
	Create(ctx context.Context, s *model.SchoolModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SchoolModel, error)
	FindBySlug(ctx context.Context, slug string) (*model.SchoolModel, error)
	Update(ctx context.Context, s *model.SchoolModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipCleaner: cascade delete memberships saat sekolah dihapus —
// bukan directory penuh, cukup kemampuan yang dibutuhkan.
type MembershipCleaner interface {
	DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error
}

type SchoolAccessValidator interface {
	RequireSchoolAccess(ctx context.Context, userID, schoolID uuid.UUID) (*membershipModel.SchoolMembershipModel, error)
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
}

// SubscriptionChecker: kontrak read-only ke billing provider.
// Dipakai untuk memutuskan lapse PREMIUM/ENTERPRISE → FREE saat
// school dibaca (bukan background job).
type SubscriptionChecker interface {
	Active(ctx context.Context, subscriptionID string) (bool, error)
}

type ResourceCleaner interface {
	DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error
}

type SlugGenerator func(ctx context.Context, base string) (string, error)

/* =========================
   School Service
========================= */

type CreateSchoolInput struct {
	Name     string
	BioShort *string
	Location *string
}

type SchoolService struct {
	schools      SchoolStore
	members      MembershipCleaner
	users        UserReader
	validator    SchoolAccessValidator
	billing      SubscriptionChecker
	cleaners     []ResourceCleaner
	generateSlug SlugGenerator
}

func NewSchoolService(
	schools SchoolStore,
	members MembershipCleaner,
	users UserReader,
	validator SchoolAccessValidator,
	billing SubscriptionChecker,
	cleaners []ResourceCleaner,
	generateSlug SlugGenerator,
) *SchoolService {
	return &SchoolService{
		schools:      schools,
		members:      members,
		users:        users,
		validator:    validator,
		billing:      billing,
		cleaners:     cleaners,
		generateSlug: generateSlug,
	}
}

// Create membuat sekolah baru di plan FREE. Sekolah lahir TANPA
// anggota: creator tercatat di school_created_by dan mengundang admin
// pertama lewat membership directory (bootstrap invite), sehingga
// member quota murni menghitung membership rows.
func (s *SchoolService) Create(ctx context.Context, creatorUserID uuid.UUID, in CreateSchoolInput) (*model.SchoolModel, error) {
	creator, err := s.users.FindByID(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	slug, err := s.generateSlug(ctx, in.Name)
	if err != nil {
		return nil, err
	}

	school := &model.SchoolModel{
		SchoolName:      in.Name,
		SchoolSlug:      slug,
		SchoolBioShort:  in.BioShort,
		SchoolLocation:  in.Location,
		SchoolCreatedBy: creator.UserID,
		SchoolIsActive:  true,
	}
	ApplyFreePlan(school)

	if err := s.schools.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// GetByID membaca school dan, untuk plan berbayar yang sudah lewat
// expiry, konsultasi billing provider — subscription lapse berarti
// turun diam-diam ke limit FREE (persisted).
func (s *SchoolService) GetByID(ctx context.Context, id uuid.UUID) (*model.SchoolModel, error) {
	school, err := s.schools.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgSchoolNotFound)
	}
	return s.lapseIfExpired(ctx, school), nil
}

func (s *SchoolService) GetBySlug(ctx context.Context, slug string) (*model.SchoolModel, error) {
	school, err := s.schools.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgSchoolNotFound)
	}
	return s.lapseIfExpired(ctx, school), nil
}

func (s *SchoolService) lapseIfExpired(ctx context.Context, school *model.SchoolModel) *model.SchoolModel {
	if school.SchoolPlan == model.SchoolPlanFree {
		return school
	}
	if school.SchoolPlanExpiresAt == nil || school.SchoolPlanExpiresAt.After(time.Now()) {
		return school
	}

	// expiry lewat — cek provider dulu, siapa tahu renewal belum
	// tersinkron. Provider error dianggap "masih aktif" (jangan
	// menghukum tenant karena outage billing).
	if s.billing != nil && school.SchoolPlanSubscriptionID != nil {
		active, err := s.billing.Active(ctx, *school.SchoolPlanSubscriptionID)
		if err != nil {
			log.Printf("[WARN] billing check for school %s failed: %v", school.SchoolID, err)
			return school
		}
		if active {
			return school
		}
	}

	ApplyFreePlan(school)
	if err := s.schools.Update(ctx, school); err != nil {
		log.Printf("[ERROR] persisting plan lapse for school %s failed: %v", school.SchoolID, err)
	}
	return school
}

/* =========================
   Plan transitions (admin)
========================= */

func (s *SchoolService) UpgradeToPremium(ctx context.Context, requesterUserID, schoolID uuid.UUID, priceID, subscriptionID string, expiresAt time.Time) (*model.SchoolModel, error) {
	school, err := s.requireAdminAndSchool(ctx, requesterUserID, schoolID, ErrMsgOnlyAdminCanEditPlan)
	if err != nil {
		return nil, err
	}
	ApplyPremiumPlan(school, priceID, subscriptionID, expiresAt)
	if err := s.schools.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) UpgradeToEnterprise(ctx context.Context, requesterUserID, schoolID uuid.UUID, maxMembers int, priceID, subscriptionID string, expiresAt time.Time) (*model.SchoolModel, error) {
	if maxMembers < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgEnterpriseMemberCount)
	}
	school, err := s.requireAdminAndSchool(ctx, requesterUserID, schoolID, ErrMsgOnlyAdminCanEditPlan)
	if err != nil {
		return nil, err
	}
	ApplyEnterprisePlan(school, maxMembers, priceID, subscriptionID, expiresAt)
	if err := s.schools.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) DowngradeToFree(ctx context.Context, requesterUserID, schoolID uuid.UUID) (*model.SchoolModel, error) {
	school, err := s.requireAdminAndSchool(ctx, requesterUserID, schoolID, ErrMsgOnlyAdminCanEditPlan)
	if err != nil {
		return nil, err
	}
	ApplyFreePlan(school)
	if err := s.schools.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

/* =========================
   Delete (cascade)
========================= */

func (s *SchoolService) Delete(ctx context.Context, requesterUserID, schoolID uuid.UUID) error {
	school, err := s.requireAdminAndSchool(ctx, requesterUserID, schoolID, ErrMsgOnlyAdminCanDelete)
	if err != nil {
		return err
	}

	for _, cleaner := range s.cleaners {
		if err := cleaner.DeleteBySchool(ctx, schoolID); err != nil {
			return err
		}
	}
	if err := s.members.DeleteBySchool(ctx, schoolID); err != nil {
		return err
	}
	return s.schools.Delete(ctx, school.SchoolID)
}

func (s *SchoolService) requireAdminAndSchool(ctx context.Context, requesterUserID, schoolID uuid.UUID, forbiddenMsg string) (*model.SchoolModel, error) {
	school, err := s.schools.FindByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgSchoolNotFound)
	}

	m, err := s.validator.RequireSchoolAccess(ctx, requesterUserID, schoolID)
	if err != nil {
		return nil, err
	}
	if !m.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, forbiddenMsg)
	}
	return school, nil
}
