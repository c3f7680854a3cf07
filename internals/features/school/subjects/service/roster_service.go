package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	membershipModel "sekolahku_backend/internals/features/school/memberships/model"
	membershipService "sekolahku_backend/internals/features/school/memberships/service"
	"sekolahku_backend/internals/features/school/subjects/model"
	"sekolahku_backend/internals/features/school/subjects/repository"
)

/* =========================
   Error messages (roster)
========================= */

const (
	ErrMsgRosterEntryNotFound    = "roster entry not found"
	ErrMsgDuplicateRosterEntry   = "user is already on this subject's roster"
	ErrMsgInviteeNotSchoolMember = "invited user is not an accepted member of this school"
	ErrMsgLastSubjectAdmin       = "cannot remove the last admin of this subject"
)

/* =========================
   Collaborator contracts
========================= */

type RosterStore interface {
	membershipService.RosterLookup
	Create(ctx context.Context, m *model.SubjectMembershipModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SubjectMembershipModel, error)
	ListBySubject(ctx context.Context, subjectID uuid.UUID, limit, offset int) ([]model.SubjectMembershipModel, int64, error)
	CountAcceptedAdmins(ctx context.Context, subjectID uuid.UUID) (int64, error)
	Update(ctx context.Context, m *model.SubjectMembershipModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SubjectReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.SubjectModel, error)
}

/* =========================
   Subject Roster
========================= */

// RosterService mengelola keanggotaan level subject. Pola mengikuti
// membership directory; prasyarat "punya SchoolMembership ACCEPT"
// selalu didelegasikan ke access validator, tidak diduplikasi.
type RosterService struct {
	roster    RosterStore
	subjects  SubjectReader
	users     membershipService.UserDirectory
	validator *membershipService.AccessValidator
	notifier  membershipService.Notifier
}

func NewRosterService(
	roster RosterStore,
	subjects SubjectReader,
	users membershipService.UserDirectory,
	validator *membershipService.AccessValidator,
	notifier membershipService.Notifier,
) *RosterService {
	return &RosterService{
		roster:    roster,
		subjects:  subjects,
		users:     users,
		validator: validator,
		notifier:  notifier,
	}
}

// ValidateAccess: dua layer (sekolah dulu, lalu roster) — lihat
// AccessValidator.RequireSubjectAccess.
func (s *RosterService) ValidateAccess(ctx context.Context, userID, subjectID uuid.UUID) (*model.SubjectMembershipModel, error) {
	return s.validator.RequireSubjectAccess(ctx, userID, subjectID)
}

// ListBySubject: daftar roster — requester harus lolos validateAccess
// subject itu.
func (s *RosterService) ListBySubject(ctx context.Context, requesterUserID, subjectID uuid.UUID, limit, offset int) ([]model.SubjectMembershipModel, int64, error) {
	if _, err := s.validator.RequireSubjectAccess(ctx, requesterUserID, subjectID); err != nil {
		return nil, 0, err
	}
	return s.roster.ListBySubject(ctx, subjectID, limit, offset)
}

// Invite menambahkan pengajar ke roster subject. Invitee wajib sudah
// jadi anggota ACCEPT di sekolah pemilik subject.
func (s *RosterService) Invite(ctx context.Context, subjectID, inviterUserID uuid.UUID, inviteeEmail string, role membershipModel.MemberRole) (*model.SubjectMembershipModel, error) {
	if !role.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, membershipService.ErrMsgInvalidMemberRole)
	}

	subj, err := s.subjects.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if subj == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, membershipService.ErrMsgSubjectNotFound)
	}

	inviter, err := s.validator.RequireSubjectAccess(ctx, inviterUserID, subjectID)
	if err != nil {
		return nil, err
	}
	if role == membershipModel.MemberRoleAdmin && !inviter.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, membershipService.ErrMsgPrivilegeEscalation)
	}

	invitee, err := s.users.FindByEmail(ctx, inviteeEmail)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, membershipService.ErrMsgUserEmailNotFound)
	}

	// Akses subject subordinat akses sekolah: tanpa SchoolMembership
	// ACCEPT, roster entry tidak bermakna.
	if _, err := s.validator.RequireSchoolAccess(ctx, invitee.UserID, subj.SubjectSchoolID); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgInviteeNotSchoolMember)
	}

	existing, err := s.roster.FindBySubjectAndUser(ctx, subjectID, invitee.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgDuplicateRosterEntry)
	}

	m := &model.SubjectMembershipModel{
		SubjectMembershipSubjectID:         subjectID,
		SubjectMembershipSchoolID:          subj.SubjectSchoolID,
		SubjectMembershipUserID:            invitee.UserID,
		SubjectMembershipRole:              role,
		SubjectMembershipStatus:            membershipModel.MemberStatusPending,
		SubjectMembershipUserNameSnapshot:  &invitee.UserName,
		SubjectMembershipUserEmailSnapshot: &invitee.UserEmail,
		SubjectMembershipUserPhoneSnapshot: invitee.UserPhone,
		SubjectMembershipUserPhotoSnapshot: invitee.UserPhotoURL,
	}
	if err := s.roster.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicateRoster) {
			return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgDuplicateRosterEntry)
		}
		return nil, err
	}

	s.notifier.Notify(subj.SubjectSchoolID, []uuid.UUID{inviterUserID},
		"Teacher invited to subject",
		fmt.Sprintf("%s has been invited to teach %s.", invitee.UserName, subj.SubjectName),
		"")
	return m, nil
}

// SeedCreatorEntry dipanggil saat subject dibuat: creator langsung
// dapat entry ACCEPT+ADMIN tanpa lewat lifecycle undangan.
// Bootstrap case, bukan backdoor umum.
func (s *RosterService) SeedCreatorEntry(ctx context.Context, subj *model.SubjectModel, creator *membershipModel.SchoolMembershipModel) error {
	m := &model.SubjectMembershipModel{
		SubjectMembershipSubjectID:         subj.SubjectID,
		SubjectMembershipSchoolID:          subj.SubjectSchoolID,
		SubjectMembershipUserID:            subj.SubjectCreatedBy,
		SubjectMembershipRole:              membershipModel.MemberRoleAdmin,
		SubjectMembershipStatus:            membershipModel.MemberStatusAccept,
		SubjectMembershipUserNameSnapshot:  creator.SchoolMembershipUserNameSnapshot,
		SubjectMembershipUserEmailSnapshot: creator.SchoolMembershipUserEmailSnapshot,
		SubjectMembershipUserPhoneSnapshot: creator.SchoolMembershipUserPhoneSnapshot,
		SubjectMembershipUserPhotoSnapshot: creator.SchoolMembershipUserPhotoSnapshot,
	}
	return s.roster.Create(ctx, m)
}

// RespondToInvitation: hanya invited user; ACCEPT flip in place,
// REJECT hapus row. Fan-out ke anggota lain.
func (s *RosterService) RespondToInvitation(ctx context.Context, rosterEntryID, respondingUserID uuid.UUID, decision membershipModel.MemberStatus) (*model.SubjectMembershipModel, error) {
	if decision != membershipModel.MemberStatusAccept && decision != membershipModel.MemberStatusReject {
		return nil, fiber.NewError(fiber.StatusBadRequest, membershipService.ErrMsgInvalidDecision)
	}

	m, err := s.roster.FindByID(ctx, rosterEntryID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, ErrMsgRosterEntryNotFound)
	}
	if m.SubjectMembershipUserID != respondingUserID {
		return nil, fiber.NewError(fiber.StatusForbidden, membershipService.ErrMsgNotInvitationOwner)
	}
	if m.SubjectMembershipStatus != membershipModel.MemberStatusPending {
		return nil, fiber.NewError(fiber.StatusBadRequest, membershipService.ErrMsgInvitationNotPending)
	}

	name := "A teacher"
	if m.SubjectMembershipUserNameSnapshot != nil {
		name = *m.SubjectMembershipUserNameSnapshot
	}

	if decision == membershipModel.MemberStatusAccept {
		m.SubjectMembershipStatus = membershipModel.MemberStatusAccept
		if err := s.roster.Update(ctx, m); err != nil {
			return nil, err
		}
		s.notifier.Notify(m.SubjectMembershipSchoolID, []uuid.UUID{respondingUserID},
			"Subject invitation accepted", name+" joined the subject roster.", "")
		return m, nil
	}

	if err := s.roster.Delete(ctx, m.SubjectMembershipID); err != nil {
		return nil, err
	}
	s.notifier.Notify(m.SubjectMembershipSchoolID, []uuid.UUID{respondingUserID},
		"Subject invitation declined", name+" declined the subject invitation.", "")
	return nil, nil
}

// Remove mengikuti aturan directory: non-admin hanya boleh remove
// dirinya sendiri; subject juga tidak boleh kehilangan admin accepted
// terakhirnya.
func (s *RosterService) Remove(ctx context.Context, rosterEntryID, requesterUserID uuid.UUID) error {
	m, err := s.roster.FindByID(ctx, rosterEntryID)
	if err != nil {
		return err
	}
	if m == nil {
		return fiber.NewError(fiber.StatusNotFound, ErrMsgRosterEntryNotFound)
	}

	requester, err := s.validator.RequireSubjectAccess(ctx, requesterUserID, m.SubjectMembershipSubjectID)
	if err != nil {
		return err
	}

	isSelf := m.SubjectMembershipUserID == requesterUserID
	if !requester.IsAdmin() && !isSelf {
		return fiber.NewError(fiber.StatusForbidden, membershipService.ErrMsgOnlyAdminCanRemove)
	}

	if m.IsAdmin() && m.IsAccepted() {
		admins, err := s.roster.CountAcceptedAdmins(ctx, m.SubjectMembershipSubjectID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return fiber.NewError(fiber.StatusBadRequest, ErrMsgLastSubjectAdmin)
		}
	}

	if err := s.roster.Delete(ctx, m.SubjectMembershipID); err != nil {
		return err
	}

	name := "A teacher"
	if m.SubjectMembershipUserNameSnapshot != nil {
		name = *m.SubjectMembershipUserNameSnapshot
	}
	s.notifier.Notify(m.SubjectMembershipSchoolID,
		[]uuid.UUID{requesterUserID, m.SubjectMembershipUserID},
		"Teacher removed from subject", name+" is no longer on the subject roster.", "")
	return nil
}
