package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	membershipService "sekolahku_backend/internals/features/school/memberships/service"
	schoolService "sekolahku_backend/internals/features/school/schools/service"
	"sekolahku_backend/internals/features/school/subjects/model"
)

const ErrMsgOnlyAdminCanManageSubjects = "only a school admin can manage subjects"

type SubjectStore interface {
	SubjectReader
	Create(ctx context.Context, s *model.SubjectModel) error
	ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]model.SubjectModel, int64, error)
	CountBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RosterCleaner interface {
	DeleteBySubject(ctx context.Context, subjectID uuid.UUID) error
}

// SlugGenerator dibuat scoped per sekolah (unik dalam satu tenant).
type SlugGenerator func(ctx context.Context, schoolID uuid.UUID, base string) (string, error)

type CreateSubjectInput struct {
	SchoolID uuid.UUID
	Name     string
	Code     *string
	Desc     *string
}

// SubjectService: CRUD subject yang quota-gated, plus auto-seed roster
// untuk creator.
type SubjectService struct {
	subjects     SubjectStore
	roster       *RosterService
	rosterRows   RosterCleaner
	schools      membershipService.SchoolReader
	validator    *membershipService.AccessValidator
	notifier     membershipService.Notifier
	generateSlug SlugGenerator
}

func NewSubjectService(
	subjects SubjectStore,
	roster *RosterService,
	rosterRows RosterCleaner,
	schools membershipService.SchoolReader,
	validator *membershipService.AccessValidator,
	notifier membershipService.Notifier,
	generateSlug SlugGenerator,
) *SubjectService {
	return &SubjectService{
		subjects:     subjects,
		roster:       roster,
		rosterRows:   rosterRows,
		schools:      schools,
		validator:    validator,
		notifier:     notifier,
		generateSlug: generateSlug,
	}
}

// Create: quota check (existing+1) SEBELUM insert — quota gagal berarti
// tidak ada row sama sekali. Creator di-seed ACCEPT+ADMIN di roster.
func (s *SubjectService) Create(ctx context.Context, creatorUserID uuid.UUID, in CreateSubjectInput) (*model.SubjectModel, error) {
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
		return nil, fiber.NewError(fiber.StatusForbidden, ErrMsgOnlyAdminCanManageSubjects)
	}

	count, err := s.subjects.CountBySchool(ctx, in.SchoolID)
	if err != nil {
		return nil, err
	}
	if err := schoolService.ValidateLimit(school, schoolService.ResourceSubjects, count+1); err != nil {
		return nil, err
	}

	slug, err := s.generateSlug(ctx, in.SchoolID, in.Name)
	if err != nil {
		return nil, err
	}

	subj := &model.SubjectModel{
		SubjectSchoolID:  in.SchoolID,
		SubjectName:      in.Name,
		SubjectSlug:      slug,
		SubjectCode:      in.Code,
		SubjectDesc:      in.Desc,
		SubjectCreatedBy: creatorUserID,
		SubjectIsActive:  true,
	}
	if err := s.subjects.Create(ctx, subj); err != nil {
		return nil, err
	}
	if err := s.roster.SeedCreatorEntry(ctx, subj, creator); err != nil {
		return nil, err
	}

	s.notifier.Notify(in.SchoolID, []uuid.UUID{creatorUserID},
		"New subject", "Subject "+subj.SubjectName+" was created.", "")
	return subj, nil
}

func (s *SubjectService) List(ctx context.Context, requesterUserID, schoolID uuid.UUID, limit, offset int) ([]model.SubjectModel, int64, error) {
	if _, err := s.validator.RequireSchoolAccess(ctx, requesterUserID, schoolID); err != nil {
		return nil, 0, err
	}
	return s.subjects.ListBySchool(ctx, schoolID, limit, offset)
}

// Delete: khusus admin subject. Roster ikut dihapus (cascade ownership).
func (s *SubjectService) Delete(ctx context.Context, requesterUserID, subjectID uuid.UUID) error {
	subj, err := s.subjects.FindByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if subj == nil {
		return fiber.NewError(fiber.StatusNotFound, membershipService.ErrMsgSubjectNotFound)
	}

	entry, err := s.validator.RequireSubjectAccess(ctx, requesterUserID, subjectID)
	if err != nil {
		return err
	}
	if !entry.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, ErrMsgOnlyAdminCanManageSubjects)
	}

	if err := s.rosterRows.DeleteBySubject(ctx, subjectID); err != nil {
		return err
	}
	if err := s.subjects.Delete(ctx, subjectID); err != nil {
		return err
	}

	s.notifier.Notify(subj.SubjectSchoolID, []uuid.UUID{requesterUserID},
		"Subject removed", "Subject "+subj.SubjectName+" was removed.", "")
	return nil
}
