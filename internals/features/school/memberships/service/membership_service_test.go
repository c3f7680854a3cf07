package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/school/memberships/model"
	"sekolahku_backend/internals/features/school/memberships/repository"
	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	schoolService "sekolahku_backend/internals/features/school/schools/service"
	userModel "sekolahku_backend/internals/features/users/users/model"
)

/* =========================
   In-memory fakes
========================= */

type fakeMembershipStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.SchoolMembershipModel
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{rows: map[uuid.UUID]*model.SchoolMembershipModel{}}
}

func (f *fakeMembershipStore) Create(_ context.Context, m *model.SchoolMembershipModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// perilaku unique index (school_id, user_id)
	for _, r := range f.rows {
		if r.SchoolMembershipSchoolID == m.SchoolMembershipSchoolID &&
			r.SchoolMembershipUserID != nil && m.SchoolMembershipUserID != nil &&
			*r.SchoolMembershipUserID == *m.SchoolMembershipUserID {
			return repository.ErrDuplicateMembership
		}
	}
	m.SchoolMembershipID = uuid.New()
	cp := *m
	f.rows[m.SchoolMembershipID] = &cp
	return nil
}

func (f *fakeMembershipStore) FindByID(_ context.Context, id uuid.UUID) (*model.SchoolMembershipModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMembershipStore) FindBySchoolAndUser(_ context.Context, schoolID, userID uuid.UUID) (*model.SchoolMembershipModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.SchoolMembershipSchoolID == schoolID &&
			r.SchoolMembershipUserID != nil && *r.SchoolMembershipUserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipStore) ListBySchool(_ context.Context, schoolID uuid.UUID, limit, offset int) ([]model.SchoolMembershipModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SchoolMembershipModel
	for _, r := range f.rows {
		if r.SchoolMembershipSchoolID == schoolID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMembershipStore) ListAcceptedBySchool(_ context.Context, schoolID uuid.UUID) ([]model.SchoolMembershipModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SchoolMembershipModel
	for _, r := range f.rows {
		if r.SchoolMembershipSchoolID == schoolID && r.IsAccepted() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeMembershipStore) CountBySchool(_ context.Context, schoolID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.rows {
		if r.SchoolMembershipSchoolID == schoolID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMembershipStore) CountAcceptedAdmins(_ context.Context, schoolID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.rows {
		if r.SchoolMembershipSchoolID == schoolID && r.IsAccepted() && r.IsAdmin() {
			n++
		}
	}
	return n, nil
}

func (f *fakeMembershipStore) Update(_ context.Context, m *model.SchoolMembershipModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.rows[m.SchoolMembershipID] = &cp
	return nil
}

func (f *fakeMembershipStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

type fakeSchoolReader struct {
	schools map[uuid.UUID]*schoolModel.SchoolModel
}

func (f *fakeSchoolReader) FindByID(_ context.Context, id uuid.UUID) (*schoolModel.SchoolModel, error) {
	if s, ok := f.schools[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

type fakeUserDirectory struct {
	users []*userModel.UserModel
}

func (f *fakeUserDirectory) FindByEmail(_ context.Context, email string) (*userModel.UserModel, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.UserEmail, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserDirectory) FindByID(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	for _, u := range f.users {
		if u.UserID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type notifyCall struct {
	schoolID uuid.UUID
	excluded []uuid.UUID
	title    string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (f *fakeNotifier) Notify(schoolID uuid.UUID, excludeUserIDs []uuid.UUID, title, _, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{schoolID: schoolID, excluded: excludeUserIDs, title: title})
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeNotifier) last() notifyCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmailSender) Send(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

/* =========================
   Test fixture
========================= */

type fixture struct {
	svc      *MembershipService
	store    *fakeMembershipStore
	notifier *fakeNotifier
	mail     *fakeEmailSender
	school   *schoolModel.SchoolModel
	admin    *userModel.UserModel
	teacher  *userModel.UserModel
	outsider *userModel.UserModel
}

func newUser(name, email string) *userModel.UserModel {
	return &userModel.UserModel{UserID: uuid.New(), UserName: name, UserEmail: email}
}

// seed langsung ke store, bypass lifecycle undangan (setup only)
func seedMember(store *fakeMembershipStore, schoolID uuid.UUID, u *userModel.UserModel, role model.MemberRole, status model.MemberStatus) *model.SchoolMembershipModel {
	m := &model.SchoolMembershipModel{
		SchoolMembershipSchoolID:          schoolID,
		SchoolMembershipUserID:            &u.UserID,
		SchoolMembershipRole:              role,
		SchoolMembershipStatus:            status,
		SchoolMembershipUserNameSnapshot:  &u.UserName,
		SchoolMembershipUserEmailSnapshot: &u.UserEmail,
	}
	_ = store.Create(context.Background(), m)
	return m
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	school := &schoolModel.SchoolModel{SchoolID: uuid.New(), SchoolName: "SD Harapan", SchoolSlug: "sd-harapan"}
	schoolService.ApplyFreePlan(school)

	admin := newUser("Bu Rina", "rina@example.com")
	teacher := newUser("Pak Budi", "budi@example.com")
	outsider := newUser("Pak Candra", "candra@example.com")

	store := newFakeMembershipStore()
	schools := &fakeSchoolReader{schools: map[uuid.UUID]*schoolModel.SchoolModel{school.SchoolID: school}}
	users := &fakeUserDirectory{users: []*userModel.UserModel{admin, teacher, outsider}}
	notifier := &fakeNotifier{}
	mail := &fakeEmailSender{}

	validator := NewAccessValidator(store, nil, nil)
	svc := NewMembershipService(store, schools, users, validator, notifier, mail, "https://app.sekolahku.test")

	return &fixture{
		svc:      svc,
		store:    store,
		notifier: notifier,
		mail:     mail,
		school:   school,
		admin:    admin,
		teacher:  teacher,
		outsider: outsider,
	}
}

func timeFarFuture() time.Time {
	return time.Now().Add(365 * 24 * time.Hour)
}

func fiberStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected *fiber.Error, got %v", err)
	return fe.Code, fe.Message
}

/* =========================
   Invite
========================= */

func TestInvite_CreatesPendingMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)

	m, err := f.svc.Invite(ctx, f.school.SchoolID, f.admin.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
	require.NoError(t, err)

	assert.Equal(t, model.MemberStatusPending, m.SchoolMembershipStatus)
	assert.Equal(t, model.MemberRoleTeacher, m.SchoolMembershipRole)
	require.NotNil(t, m.SchoolMembershipUserNameSnapshot)
	assert.Equal(t, f.teacher.UserName, *m.SchoolMembershipUserNameSnapshot)

	// tepat satu broadcast, inviter di-exclude
	require.Equal(t, 1, f.notifier.count())
	assert.Contains(t, f.notifier.calls[0].excluded, f.admin.UserID)
}

func TestInvite_UnknownEmailNotFound(t *testing.T) {
	f := newFixture(t)
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)

	_, err := f.svc.Invite(context.Background(), f.school.SchoolID, f.admin.UserID, "ghost@example.com", model.MemberRoleTeacher)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, ErrMsgUserEmailNotFound, msg)
}

func TestInvite_NonMemberInviterForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Invite(context.Background(), f.school.SchoolID, f.outsider.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgNotSchoolMember, msg)
}

// Role escalation: teacher tidak boleh mengundang admin.
func TestInvite_TeacherCannotGrantAdmin(t *testing.T) {
	f := newFixture(t)
	seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusAccept)

	_, err := f.svc.Invite(context.Background(), f.school.SchoolID, f.teacher.UserID, f.outsider.UserEmail, model.MemberRoleAdmin)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgPrivilegeEscalation, msg)

	// teacher tetap boleh mengundang sesama teacher
	_, err = f.svc.Invite(context.Background(), f.school.SchoolID, f.teacher.UserID, f.outsider.UserEmail, model.MemberRoleTeacher)
	require.NoError(t, err)
}

func TestInvite_DuplicateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)

	_, err := f.svc.Invite(ctx, f.school.SchoolID, f.admin.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
	require.NoError(t, err)

	_, err = f.svc.Invite(ctx, f.school.SchoolID, f.admin.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, ErrMsgDuplicateMembership, msg)
}

// Uniqueness di bawah concurrency: dua invite paralel untuk user yang
// sama — tepat satu yang menang, sisanya duplicate error, dan total
// record untuk pasangan (school, user) tetap satu.
func TestInvite_ConcurrentInvitesSingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)

	// naikkan quota supaya satu-satunya pembeda adalah uniqueness
	schoolService.ApplyEnterprisePlan(f.school, 100, "p", "s", timeFarFuture())

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Invite(ctx, f.school.SchoolID, f.admin.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
		}(i)
	}
	wg.Wait()

	var wins, dups int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		_, msg := fiberStatus(t, err)
		assert.Equal(t, ErrMsgDuplicateMembership, msg)
		dups++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, dups)

	n, err := f.store.CountBySchool(ctx, f.school.SchoolID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n) // admin + tepat satu row teacher
}

// Quota FREE: limit member 2 (admin + 1 anggota). Undangan ketiga gagal
// Forbidden dan tidak meninggalkan record.
func TestInvite_MemberQuotaOnFreePlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)

	_, err := f.svc.Invite(ctx, f.school.SchoolID, f.admin.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
	require.NoError(t, err)

	_, err = f.svc.Invite(ctx, f.school.SchoolID, f.admin.UserID, f.outsider.UserEmail, model.MemberRoleTeacher)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, schoolService.ErrMsgMemberQuotaExceeded, msg)

	n, _ := f.store.CountBySchool(ctx, f.school.SchoolID)
	assert.Equal(t, int64(2), n)
}

/* =========================
   Respond to invitation
========================= */

func TestRespond_AcceptFlipsStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)
	inv := seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusPending)

	m, err := f.svc.RespondToInvitation(ctx, inv.SchoolMembershipID, f.teacher.UserID, model.MemberStatusAccept)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusAccept, m.SchoolMembershipStatus)

	// status persisted
	got, _ := f.store.FindByID(ctx, inv.SchoolMembershipID)
	require.NotNil(t, got)
	assert.True(t, got.IsAccepted())
}

func TestRespond_RejectDeletesRecordAndAllowsReinvite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)
	inv := seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusPending)

	m, err := f.svc.RespondToInvitation(ctx, inv.SchoolMembershipID, f.teacher.UserID, model.MemberStatusReject)
	require.NoError(t, err)
	assert.Nil(t, m)

	got, _ := f.store.FindByID(ctx, inv.SchoolMembershipID)
	assert.Nil(t, got)

	// user yang reject boleh diundang ulang
	_, err = f.svc.Invite(ctx, f.school.SchoolID, f.admin.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
	require.NoError(t, err)
}

func TestRespond_OnlyInvitedUser(t *testing.T) {
	f := newFixture(t)
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)
	inv := seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusPending)

	_, err := f.svc.RespondToInvitation(context.Background(), inv.SchoolMembershipID, f.admin.UserID, model.MemberStatusAccept)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgNotInvitationOwner, msg)
}

func TestRespond_NonPendingRejected(t *testing.T) {
	f := newFixture(t)
	m := seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusAccept)

	_, err := f.svc.RespondToInvitation(context.Background(), m.SchoolMembershipID, f.teacher.UserID, model.MemberStatusAccept)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, ErrMsgInvitationNotPending, msg)
}

func TestRespond_InvalidDecision(t *testing.T) {
	f := newFixture(t)
	inv := seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusPending)

	_, err := f.svc.RespondToInvitation(context.Background(), inv.SchoolMembershipID, f.teacher.UserID, model.MemberStatusPending)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, ErrMsgInvalidDecision, msg)
}

/* =========================
   Update role
========================= */

func TestUpdateRole_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)
	seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusAccept)
	other := seedMember(f.store, f.school.SchoolID, f.outsider, model.MemberRoleTeacher, model.MemberStatusAccept)

	adminRole := model.MemberRoleAdmin
	_, err := f.svc.UpdateRole(ctx, other.SchoolMembershipID, f.teacher.UserID, UpdateRolePatch{Role: &adminRole})
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgOnlyAdminCanEdit, msg)

	got, err := f.svc.UpdateRole(ctx, other.SchoolMembershipID, f.admin.UserID, UpdateRolePatch{Role: &adminRole})
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())
}

/* =========================
   Remove
========================= */

func TestRemove_LastAdminProtected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adminRow := seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)
	seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusAccept)

	err := f.svc.Remove(ctx, adminRow.SchoolMembershipID, f.admin.UserID)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, ErrMsgLastAdminRemoval, msg)

	// dengan admin kedua, removal jalan
	second := seedMember(f.store, f.school.SchoolID, f.outsider, model.MemberRoleAdmin, model.MemberStatusAccept)
	_ = second
	err = f.svc.Remove(ctx, adminRow.SchoolMembershipID, f.admin.UserID)
	require.NoError(t, err)
}

func TestRemove_NonAdminOnlySelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)
	teacherRow := seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusAccept)
	otherRow := seedMember(f.store, f.school.SchoolID, f.outsider, model.MemberRoleTeacher, model.MemberStatusAccept)

	err := f.svc.Remove(ctx, otherRow.SchoolMembershipID, f.teacher.UserID)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgOnlyAdminCanRemove, msg)

	// self-removal boleh
	err = f.svc.Remove(ctx, teacherRow.SchoolMembershipID, f.teacher.UserID)
	require.NoError(t, err)
	got, _ := f.store.FindByID(ctx, teacherRow.SchoolMembershipID)
	assert.Nil(t, got)
}

/* =========================
   ValidateAccess
========================= */

// Idempotence: pemanggilan berulang memberi hasil identik tanpa side
// effect di store.
func TestValidateAccess_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)
	seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusPending)

	for i := 0; i < 3; i++ {
		m, err := f.svc.ValidateAccess(ctx, f.admin.UserID, f.school.SchoolID)
		require.NoError(t, err)
		assert.True(t, m.IsAdmin())
	}

	// PENDING tidak pernah lolos
	for i := 0; i < 3; i++ {
		_, err := f.svc.ValidateAccess(ctx, f.teacher.UserID, f.school.SchoolID)
		code, msg := fiberStatus(t, err)
		assert.Equal(t, fiber.StatusForbidden, code)
		assert.Equal(t, ErrMsgNotSchoolMember, msg)
	}

	n, _ := f.store.CountBySchool(ctx, f.school.SchoolID)
	assert.Equal(t, int64(2), n)
}

// Role berubah di store → panggilan berikutnya langsung memakai role
// baru (tidak ada cache).
func TestValidateAccess_ReflectsRoleChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	row := seedMember(f.store, f.school.SchoolID, f.teacher, model.MemberRoleTeacher, model.MemberStatusAccept)

	m, err := f.svc.ValidateAccess(ctx, f.teacher.UserID, f.school.SchoolID)
	require.NoError(t, err)
	assert.False(t, m.IsAdmin())

	row.SchoolMembershipRole = model.MemberRoleAdmin
	require.NoError(t, f.store.Update(ctx, row))

	m, err = f.svc.ValidateAccess(ctx, f.teacher.UserID, f.school.SchoolID)
	require.NoError(t, err)
	assert.True(t, m.IsAdmin())
}

/* =========================
   Bootstrap & full lifecycle
========================= */

// Sekolah lahir tanpa anggota; creator mengundang admin pertama lewat
// bootstrap invite, lalu seluruh lifecycle berjalan dalam cap FREE
// (2 anggota): A admin + B teacher.
func TestFreeSchoolLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := newUser("Bu Wati", "wati@example.com")
	f.school.SchoolCreatedBy = creator.UserID

	// creator belum punya membership — bootstrap invite A sebagai ADMIN
	mA, err := f.svc.Invite(ctx, f.school.SchoolID, creator.UserID, f.admin.UserEmail, model.MemberRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusPending, mA.SchoolMembershipStatus)

	got, err := f.svc.RespondToInvitation(ctx, mA.SchoolMembershipID, f.admin.UserID, model.MemberStatusAccept)
	require.NoError(t, err)
	assert.True(t, got.IsAccepted())

	// A (anggota ke-1) mengundang B sebagai TEACHER — 2/2 di FREE, lolos
	mB, err := f.svc.Invite(ctx, f.school.SchoolID, f.admin.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusPending, mB.SchoolMembershipStatus)

	_, err = f.svc.RespondToInvitation(ctx, mB.SchoolMembershipID, f.teacher.UserID, model.MemberStatusAccept)
	require.NoError(t, err)

	// B keluar sendiri → tepat satu notifikasi, dan A bukan excluded
	before := f.notifier.count()
	require.NoError(t, f.svc.Remove(ctx, mB.SchoolMembershipID, f.teacher.UserID))
	assert.Equal(t, before+1, f.notifier.count())
	assert.NotContains(t, f.notifier.last().excluded, f.admin.UserID)

	// tinggal A, satu-satunya accepted admin — self-removal ditolak
	err = f.svc.Remove(ctx, mA.SchoolMembershipID, f.admin.UserID)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, ErrMsgLastAdminRemoval, msg)
}

// Bootstrap hanya untuk creator — orang lain tetap ditolak walau
// sekolah masih kosong.
func TestInvite_BootstrapOnlyCreator(t *testing.T) {
	f := newFixture(t)
	f.school.SchoolCreatedBy = uuid.New()

	_, err := f.svc.Invite(context.Background(), f.school.SchoolID, f.outsider.UserID, f.admin.UserEmail, model.MemberRoleAdmin)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgNotSchoolMember, msg)
}

// Bootstrap tertutup begitu sekolah punya membership row: creator yang
// bukan anggota tidak bisa terus mengundang lewat jalur itu.
func TestInvite_BootstrapOnlyWhileEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := newUser("Bu Wati", "wati@example.com")
	f.school.SchoolCreatedBy = creator.UserID

	_, err := f.svc.Invite(ctx, f.school.SchoolID, creator.UserID, f.admin.UserEmail, model.MemberRoleAdmin)
	require.NoError(t, err)

	_, err = f.svc.Invite(ctx, f.school.SchoolID, creator.UserID, f.teacher.UserEmail, model.MemberRoleTeacher)
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, ErrMsgNotSchoolMember, msg)
}

// Demosi via patch tunduk pada last-admin protection yang sama dengan
// Remove: admin accepted terakhir tidak bisa diturunkan jadi teacher.
func TestUpdateRole_LastAdminDemotionBlocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	row := seedMember(f.store, f.school.SchoolID, f.admin, model.MemberRoleAdmin, model.MemberStatusAccept)

	demote := model.MemberRoleTeacher
	_, err := f.svc.UpdateRole(ctx, row.SchoolMembershipID, f.admin.UserID, UpdateRolePatch{Role: &demote})
	code, msg := fiberStatus(t, err)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, ErrMsgLastAdminDemotion, msg)

	// dengan admin kedua, demosi jalan
	seedMember(f.store, f.school.SchoolID, f.outsider, model.MemberRoleAdmin, model.MemberStatusAccept)
	got, err := f.svc.UpdateRole(ctx, row.SchoolMembershipID, f.admin.UserID, UpdateRolePatch{Role: &demote})
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleTeacher, got.SchoolMembershipRole)
}
