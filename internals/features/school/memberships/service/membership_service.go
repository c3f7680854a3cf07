package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/memberships/model"
	"sekolahku_backend/internals/features/school/memberships/repository"
	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	schoolService "sekolahku_backend/internals/features/school/schools/service"
	userModel "sekolahku_backend/internals/features/users/users/model"
)

/* =========================
   Error messages (membership)
========================= */

const (
	ErrMsgMembershipNotFound   = "membership not found"
	ErrMsgUserEmailNotFound    = "no user found for that email"
	ErrMsgDuplicateMembership  = "user already has a membership in this school"
	ErrMsgPrivilegeEscalation  = "only an admin can grant the admin role"
	ErrMsgNotInvitationOwner   = "only the invited user can respond to this invitation"
	ErrMsgInvitationNotPending = "invitation has already been responded to"
	ErrMsgInvalidDecision      = "invalid invitation decision"
	ErrMsgOnlyAdminCanEdit     = "only an admin can edit memberships"
	ErrMsgOnlyAdminCanRemove   = "only an admin can remove other members"
	ErrMsgLastAdminRemoval     = "cannot remove the last admin of this school"
	ErrMsgLastAdminDemotion    = "cannot demote the last admin of this school"
	ErrMsgInvalidMemberRole    = "invalid member role"
)

/* =========================
   Collaborator contracts
========================= */

type MembershipStore interface {
	MembershipLookup
	Create(ctx context.Context, m *model.SchoolMembershipModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SchoolMembershipModel, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]model.SchoolMembershipModel, int64, error)
	ListAcceptedBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolMembershipModel, error)
	CountBySchool(ctx context.Context, schoolID uuid.UUID) (int64, error)
	CountAcceptedAdmins(ctx context.Context, schoolID uuid.UUID) (int64, error)
	Update(ctx context.Context, m *model.SchoolMembershipModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SchoolReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*schoolModel.SchoolModel, error)
}

type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
}

// Notifier fan-out best-effort: dipanggil SETELAH mutasi membership sukses,
// tidak pernah menggagalkan operasi pemicunya.
type Notifier interface {
	Notify(schoolID uuid.UUID, excludeUserIDs []uuid.UUID, title, body, url string)
}

// EmailSender untuk email undangan langsung ke invitee.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

/* =========================
   Membership Directory
========================= */

type MembershipService struct {
	members   MembershipStore
	schools   SchoolReader
	users     UserDirectory
	validator *AccessValidator
	notifier  Notifier
	mail      EmailSender

	frontendBaseURL string
}

func NewMembershipService(
	members MembershipStore,
	schools SchoolReader,
	users UserDirectory,
	validator *AccessValidator,
	notifier Notifier,
	mail EmailSender,
	frontendBaseURL string,
) *MembershipService {
	return &MembershipService{
		members:         members,
		schools:         schools,
		users:           users,
		validator:       validator,
		notifier:        notifier,
		mail:            mail,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
	}
}

// ValidateAccess: lookup (userId, schoolId), gagal kalau absen atau
// status != ACCEPT. Read-only, tanpa side effect.
func (s *MembershipService) ValidateAccess(ctx context.Context, userID, schoolID uuid.UUID) (*model.SchoolMembershipModel, error) {
	return s.validator.RequireSchoolAccess(ctx, userID, schoolID)
}

// ListBySchool: daftar anggota (semua status) — hanya untuk anggota
// accepted sekolah itu sendiri.
func (s *MembershipService) ListBySchool(ctx context.Context, requesterUserID, schoolID uuid.UUID, limit, offset int) ([]model.SchoolMembershipModel, int64, error) {
	if _, err := s.validator.RequireSchoolAccess(ctx, requesterUserID, schoolID); err != nil {
		return nil, 0, err
	}
	return s.members.ListBySchool(ctx, schoolID, limit, offset)
}

// Invite membuat membership PENDING untuk user yang di-resolve by email.
// Urutan guard: akses inviter → anti privilege escalation → resolve
// invitee → anti duplikat → quota. Quota gagal = record TIDAK dibuat;
// kegagalan email/notifikasi TIDAK membatalkan record.
func (s *MembershipService) Invite(ctx context.Context, schoolID, inviterUserID uuid.UUID, inviteeEmail string, role model.MemberRole) (*model.SchoolMembershipModel, error) {
	if !role.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidMemberRole)
	}

	school, err := s.schools.FindByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgSchoolNotFound)
	}

	inviter, err := s.validator.RequireSchoolAccess(ctx, inviterUserID, schoolID)
	if err != nil {
		// Bootstrap: sekolah baru belum punya anggota sama sekali —
		// hanya pembuat sekolah yang boleh mengundang admin pertama.
		count, cerr := s.members.CountBySchool(ctx, schoolID)
		if cerr != nil {
			return nil, cerr
		}
		if count != 0 || school.SchoolCreatedBy != inviterUserID {
			return nil, err
		}
	}
	// inviter nil hanya pada bootstrap path; creator bertindak sebagai admin.
	if role == model.MemberRoleAdmin && inviter != nil && !inviter.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, ErrMsgPrivilegeEscalation)
	}

	invitee, err := s.users.FindByEmail(ctx, inviteeEmail)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgUserEmailNotFound)
	}

	existing, err := s.members.FindBySchoolAndUser(ctx, schoolID, invitee.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgDuplicateMembership)
	}

	count, err := s.members.CountBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if err := schoolService.ValidateLimit(school, schoolService.ResourceMembers, count+1); err != nil {
		return nil, err
	}

	m := &model.SchoolMembershipModel{
		SchoolMembershipSchoolID:          schoolID,
		SchoolMembershipUserID:            &invitee.UserID,
		SchoolMembershipRole:              role,
		SchoolMembershipStatus:            model.MemberStatusPending,
		SchoolMembershipUserNameSnapshot:  &invitee.UserName,
		SchoolMembershipUserEmailSnapshot: &invitee.UserEmail,
		SchoolMembershipUserPhoneSnapshot: invitee.UserPhone,
		SchoolMembershipUserPhotoSnapshot: invitee.UserPhotoURL,
	}
	if err := s.members.Create(ctx, m); err != nil {
		// unique index (school_id, user_id) adalah sumber kebenaran —
		// dua invite paralel bisa sama-sama lolos pre-check di atas.
		if errors.Is(err, repository.ErrDuplicateMembership) {
			return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgDuplicateMembership)
		}
		return nil, err
	}

	s.notifier.Notify(schoolID, []uuid.UUID{inviterUserID},
		"New member invited",
		fmt.Sprintf("%s has been invited to join %s as %s.", invitee.UserName, school.SchoolName, role),
		s.frontendBaseURL+"/schools/"+school.SchoolSlug+"/members",
	)
	s.sendInviteEmail(invitee.UserEmail, school.SchoolName, school.SchoolSlug, role)

	return m, nil
}

// RespondToInvitation: hanya invited user yang boleh merespons.
// ACCEPT flip status in place; REJECT hapus row. Dua-duanya fan-out ke
// anggota accepted lain (responder di-exclude).
func (s *MembershipService) RespondToInvitation(ctx context.Context, membershipID, respondingUserID uuid.UUID, decision model.MemberStatus) (*model.SchoolMembershipModel, error) {
	if decision != model.MemberStatusAccept && decision != model.MemberStatusReject {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidDecision)
	}

	m, err := s.members.FindByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgMembershipNotFound)
	}
	if m.SchoolMembershipUserID == nil || *m.SchoolMembershipUserID != respondingUserID {
		return nil, fiber.NewError(fiber.StatusForbidden, ErrMsgNotInvitationOwner)
	}
	if m.SchoolMembershipStatus != model.MemberStatusPending {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvitationNotPending)
	}

	name := "A member"
	if m.SchoolMembershipUserNameSnapshot != nil {
		name = *m.SchoolMembershipUserNameSnapshot
	}

	if decision == model.MemberStatusAccept {
		m.SchoolMembershipStatus = model.MemberStatusAccept
		if err := s.members.Update(ctx, m); err != nil {
			return nil, err
		}
		s.notifier.Notify(m.SchoolMembershipSchoolID, []uuid.UUID{respondingUserID},
			"Invitation accepted", name+" joined the school.", "")
		return m, nil
	}

	// REJECT → record dihapus
	if err := s.members.Delete(ctx, m.SchoolMembershipID); err != nil {
		return nil, err
	}
	s.notifier.Notify(m.SchoolMembershipSchoolID, []uuid.UUID{respondingUserID},
		"Invitation declined", name+" declined the invitation.", "")
	return nil, nil
}

// UpdateRolePatch: patch yang boleh lewat edit generik admin.
// Status sengaja TIDAK ada di sini — status hanya berubah lewat
// RespondToInvitation.
type UpdateRolePatch struct {
	Role  *model.MemberRole
	Name  *string
	Phone *string
}

func (s *MembershipService) UpdateRole(ctx context.Context, membershipID, editorUserID uuid.UUID, patch UpdateRolePatch) (*model.SchoolMembershipModel, error) {
	m, err := s.members.FindByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgMembershipNotFound)
	}

	editor, err := s.validator.RequireSchoolAccess(ctx, editorUserID, m.SchoolMembershipSchoolID)
	if err != nil {
		return nil, err
	}
	if !editor.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, ErrMsgOnlyAdminCanEdit)
	}

	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidMemberRole)
		}
		// Last-admin protection berlaku juga untuk demosi via patch,
		// bukan cuma Remove — sekolah tidak boleh jadi adminless.
		if m.IsAdmin() && m.IsAccepted() && *patch.Role != model.MemberRoleAdmin {
			admins, err := s.members.CountAcceptedAdmins(ctx, m.SchoolMembershipSchoolID)
			if err != nil {
				return nil, err
			}
			if admins <= 1 {
				return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgLastAdminDemotion)
			}
		}
		m.SchoolMembershipRole = *patch.Role
	}
	if patch.Name != nil {
		m.SchoolMembershipUserNameSnapshot = patch.Name
	}
	if patch.Phone != nil {
		m.SchoolMembershipUserPhoneSnapshot = patch.Phone
	}

	if err := s.members.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Remove: requester harus anggota accepted; non-admin hanya boleh
// remove dirinya sendiri. Last-admin protection: sekolah tidak boleh
// kehilangan admin accepted terakhirnya selama masih punya anggota.
func (s *MembershipService) Remove(ctx context.Context, membershipID, requesterUserID uuid.UUID) error {
	m, err := s.members.FindByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if m == nil {
		return fiber.NewError(fiber.StatusNotFound, ErrMsgMembershipNotFound)
	}

	requester, err := s.validator.RequireSchoolAccess(ctx, requesterUserID, m.SchoolMembershipSchoolID)
	if err != nil {
		return err
	}

	isSelf := m.SchoolMembershipUserID != nil && *m.SchoolMembershipUserID == requesterUserID
	if !requester.IsAdmin() && !isSelf {
		return fiber.NewError(fiber.StatusForbidden, ErrMsgOnlyAdminCanRemove)
	}

	if m.IsAdmin() && m.IsAccepted() {
		admins, err := s.members.CountAcceptedAdmins(ctx, m.SchoolMembershipSchoolID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return fiber.NewError(fiber.StatusBadRequest, ErrMsgLastAdminRemoval)
		}
	}

	if err := s.members.Delete(ctx, m.SchoolMembershipID); err != nil {
		return err
	}

	exclude := []uuid.UUID{requesterUserID}
	if m.SchoolMembershipUserID != nil {
		exclude = append(exclude, *m.SchoolMembershipUserID)
	}
	name := "A member"
	if m.SchoolMembershipUserNameSnapshot != nil {
		name = *m.SchoolMembershipUserNameSnapshot
	}
	s.notifier.Notify(m.SchoolMembershipSchoolID, exclude,
		"Member removed", name+" is no longer a member of the school.", "")
	return nil
}

/* =========================
   Private helpers
========================= */

// Email undangan langsung ke invitee: fire-and-forget, gagal cuma di-log.
func (s *MembershipService) sendInviteEmail(to, schoolName, schoolSlug string, role model.MemberRole) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		link := s.frontendBaseURL + "/schools/" + schoolSlug + "/invitations"
		html := fmt.Sprintf(
			`<p>You have been invited to join <b>%s</b> as <b>%s</b>.</p><p><a href="%s">Accept or decline the invitation</a></p>`,
			schoolName, role, link,
		)
		if err := s.mail.Send(ctx, to, "Invitation to join "+schoolName, html); err != nil {
			log.Printf("[WARN] invite email to %s failed: %v", to, err)
		}
	}()
}
