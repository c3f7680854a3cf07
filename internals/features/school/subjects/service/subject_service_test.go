package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	membershipModel "sekolahku_backend/internals/features/school/memberships/model"
	membershipService "sekolahku_backend/internals/features/school/memberships/service"
	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	schoolService "sekolahku_backend/internals/features/school/schools/service"
	userModel "sekolahku_backend/internals/features/users/users/model"
)

type subjectFixture struct {
	svc      *SubjectService
	subjects *fakeSubjectStore
	roster   *fakeRosterStore
	notifier *fakeNotifier
	school   *schoolModel.SchoolModel
	admin    *userModel.UserModel
	teacher  *userModel.UserModel
}

func newSubjectFixture(t *testing.T) *subjectFixture {
	t.Helper()

	school := &schoolModel.SchoolModel{SchoolID: uuid.New(), SchoolName: "SMP Nusantara", SchoolSlug: "smp-nusantara"}
	schoolService.ApplyFreePlan(school)

	admin := &userModel.UserModel{UserID: uuid.New(), UserName: "Bu Sari", UserEmail: "sari@example.com"}
	teacher := &userModel.UserModel{UserID: uuid.New(), UserName: "Pak Eko", UserEmail: "eko@example.com"}

	members := newFakeMembershipLookup()
	members.add(school.SchoolID, admin, membershipModel.MemberRoleAdmin, membershipModel.MemberStatusAccept)
	members.add(school.SchoolID, teacher, membershipModel.MemberRoleTeacher, membershipModel.MemberStatusAccept)

	subjects := newFakeSubjectStore()
	roster := newFakeRosterStore()
	notifier := &fakeNotifier{}
	users := &fakeUsers{users: []*userModel.UserModel{admin, teacher}}
	schools := &fakeSchools{schools: map[uuid.UUID]*schoolModel.SchoolModel{school.SchoolID: school}}

	validator := membershipService.NewAccessValidator(members, roster, subjects)
	rosterSvc := NewRosterService(roster, subjects, users, validator, notifier)

	slugGen := func(_ context.Context, _ uuid.UUID, base string) (string, error) {
		return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
	}
	svc := NewSubjectService(subjects, rosterSvc, roster, schools, validator, notifier, slugGen)

	return &subjectFixture{
		svc:      svc,
		subjects: subjects,
		roster:   roster,
		notifier: notifier,
		school:   school,
		admin:    admin,
		teacher:  teacher,
	}
}

func TestSubjectCreate_SeedsCreatorRoster(t *testing.T) {
	f := newSubjectFixture(t)
	ctx := context.Background()

	subj, err := f.svc.Create(ctx, f.admin.UserID, CreateSubjectInput{SchoolID: f.school.SchoolID, Name: "Fisika"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, subj.SubjectID)
	assert.NotEmpty(t, subj.SubjectSlug)

	entry, err := f.roster.FindBySubjectAndUser(ctx, subj.SubjectID, f.admin.UserID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.IsAccepted())
	assert.True(t, entry.IsAdmin())

	// creator langsung lolos two-layer validateAccess
	_, err = f.svc.validator.RequireSubjectAccess(ctx, f.admin.UserID, subj.SubjectID)
	assert.NoError(t, err)
}

func TestSubjectCreate_AdminOnly(t *testing.T) {
	f := newSubjectFixture(t)

	_, err := f.svc.Create(context.Background(), f.teacher.UserID, CreateSubjectInput{SchoolID: f.school.SchoolID, Name: "Kimia"})
	code, msg := rosterErr(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgOnlyAdminCanManageSubjects, msg)
}

func TestSubjectCreate_UnknownSchool(t *testing.T) {
	f := newSubjectFixture(t)

	_, err := f.svc.Create(context.Background(), f.admin.UserID, CreateSubjectInput{SchoolID: uuid.New(), Name: "Kimia"})
	code, msg := rosterErr(t, err)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, membershipService.ErrMsgSchoolNotFound, msg)
}

func TestSubjectCreate_FreeQuotaBoundary(t *testing.T) {
	f := newSubjectFixture(t)
	ctx := context.Background()

	// FREE: tepat 3 subject
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, f.admin.UserID, CreateSubjectInput{
			SchoolID: f.school.SchoolID,
			Name:     fmt.Sprintf("Mapel %d", i+1),
		})
		require.NoError(t, err)
	}

	_, err := f.svc.Create(ctx, f.admin.UserID, CreateSubjectInput{SchoolID: f.school.SchoolID, Name: "Mapel 4"})
	code, msg := rosterErr(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, schoolService.ErrMsgSubjectQuotaExceeded, msg)

	n, _ := f.subjects.CountBySchool(ctx, f.school.SchoolID)
	assert.Equal(t, int64(3), n)
}

func TestSubjectDelete_CascadesRoster(t *testing.T) {
	f := newSubjectFixture(t)
	ctx := context.Background()

	subj, err := f.svc.Create(ctx, f.admin.UserID, CreateSubjectInput{SchoolID: f.school.SchoolID, Name: "Biologi"})
	require.NoError(t, err)

	// tambah satu teacher ke roster dulu
	rosterSvc := f.svc.roster
	entry, err := rosterSvc.Invite(ctx, subj.SubjectID, f.admin.UserID, f.teacher.UserEmail, membershipModel.MemberRoleTeacher)
	require.NoError(t, err)
	_, err = rosterSvc.RespondToInvitation(ctx, entry.SubjectMembershipID, f.teacher.UserID, membershipModel.MemberStatusAccept)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.admin.UserID, subj.SubjectID))

	got, err := f.subjects.FindByID(ctx, subj.SubjectID)
	require.NoError(t, err)
	assert.Nil(t, got)

	rows, total, err := f.roster.ListBySubject(ctx, subj.SubjectID, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, total)
}

func TestSubjectDelete_RequiresSubjectAdmin(t *testing.T) {
	f := newSubjectFixture(t)
	ctx := context.Background()

	subj, err := f.svc.Create(ctx, f.admin.UserID, CreateSubjectInput{SchoolID: f.school.SchoolID, Name: "Sejarah"})
	require.NoError(t, err)

	// teacher di roster sebagai TEACHER: akses oke, delete tidak
	rosterSvc := f.svc.roster
	entry, err := rosterSvc.Invite(ctx, subj.SubjectID, f.admin.UserID, f.teacher.UserEmail, membershipModel.MemberRoleTeacher)
	require.NoError(t, err)
	_, err = rosterSvc.RespondToInvitation(ctx, entry.SubjectMembershipID, f.teacher.UserID, membershipModel.MemberStatusAccept)
	require.NoError(t, err)

	err = f.svc.Delete(ctx, f.teacher.UserID, subj.SubjectID)
	code, msg := rosterErr(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgOnlyAdminCanManageSubjects, msg)
}

func TestSubjectList_RequiresSchoolMembership(t *testing.T) {
	f := newSubjectFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.List(ctx, uuid.New(), f.school.SchoolID, 20, 0)
	code, msg := rosterErr(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, membershipService.ErrMsgNotSchoolMember, msg)
}
