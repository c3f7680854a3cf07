package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/classes/model"
	membershipService "sekolahku_backend/internals/features/school/memberships/service"
	schoolService "sekolahku_backend/internals/features/school/schools/service"
)

const (
	ErrMsgClassNotFound           = "class not found"
	ErrMsgOnlyAdminCanManageClass = "only a school admin can manage classes"
)

type ClassStore interface {
	Create(ctx context.Context, c *model.ClassModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ClassModel, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]model.ClassModel, int64, error)
	CountBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SlugGenerator func(ctx context.Context, schoolID uuid.UUID, base string) (string, error)

type CreateClassInput struct {
	SchoolID uuid.UUID
	Name     string
	Level    *string
	Desc     *string
}

// ClassService: slice CRUD kelas — resource quota-gated
// (limit class per plan).
type ClassService struct {
	classes      ClassStore
	schools      membershipService.SchoolReader
	validator    *membershipService.AccessValidator
	notifier     membershipService.Notifier
	generateSlug SlugGenerator
}

func NewClassService(
	classes ClassStore,
	schools membershipService.SchoolReader,
	validator *membershipService.AccessValidator,
	notifier membershipService.Notifier,
	generateSlug SlugGenerator,
) *ClassService {
	return &ClassService{
		classes:      classes,
		schools:      schools,
		validator:    validator,
		notifier:     notifier,
		generateSlug: generateSlug,
	}
}

// Create: validasi quota dengan existing+1 SEBELUM insert.
func (s *ClassService) Create(ctx context.Context, creatorUserID uuid.UUID, in CreateClassInput) (*model.ClassModel, error) {
	school, err := s.schools.FindByID(ctx, in.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, membershipService.ErrMsgSchoolNotFound)
	}

	creator, err := s.validator.RequireSchoolAccess(ctx, creatorUserID, in.SchoolID)
	if err != nil {
		return nil, err
	}
	if !creator.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, ErrMsgOnlyAdminCanManageClass)
	}

	count, err := s.classes.CountBySchool(ctx, in.SchoolID)
	if err != nil {
		return nil, err
	}
	if err := schoolService.ValidateLimit(school, schoolService.ResourceClasses, count+1); err != nil {
		return nil, err
	}

	slug, err := s.generateSlug(ctx, in.SchoolID, in.Name)
	if err != nil {
		return nil, err
	}

	cls := &model.ClassModel{
		ClassSchoolID: in.SchoolID,
		ClassName:     in.Name,
		ClassSlug:     slug,
		ClassLevel:    in.Level,
		ClassDesc:     in.Desc,
		ClassIsActive: true,
	}
	if err := s.classes.Create(ctx, cls); err != nil {
		return nil, err
	}

	s.notifier.Notify(in.SchoolID, []uuid.UUID{creatorUserID},
		"New class", "Class "+cls.ClassName+" was created.", "")
	return cls, nil
}

func (s *ClassService) List(ctx context.Context, requesterUserID, schoolID uuid.UUID, limit, offset int) ([]model.ClassModel, int64, error) {
	if _, err := s.validator.RequireSchoolAccess(ctx, requesterUserID, schoolID); err != nil {
		return nil, 0, err
	}
	return s.classes.ListBySchool(ctx, schoolID, limit, offset)
}

func (s *ClassService) Delete(ctx context.Context, requesterUserID, classID uuid.UUID) error {
	cls, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return err
	}
	if cls == nil {
		return fiber.NewError(fiber.StatusNotFound, ErrMsgClassNotFound)
	}

	requester, err := s.validator.RequireSchoolAccess(ctx, requesterUserID, cls.ClassSchoolID)
	if err != nil {
		return err
	}
	if !requester.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, ErrMsgOnlyAdminCanManageClass)
	}

	if err := s.classes.Delete(ctx, classID); err != nil {
		return err
	}

	s.notifier.Notify(cls.ClassSchoolID, []uuid.UUID{requesterUserID},
		"Class removed", "Class "+cls.ClassName+" was removed.", "")
	return nil
}
