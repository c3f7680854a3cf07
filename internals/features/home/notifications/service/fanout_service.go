package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sekolahku_backend/internals/features/home/notifications/model"
	membershipModel "sekolahku_backend/internals/features/school/memberships/model"
)

// ErrSubscriptionGone: transport menolak subscription secara permanen
// (endpoint 404/410) — sinyal untuk prune, dibedakan dari failure
// transien.
var ErrSubscriptionGone = errors.New("push subscription permanently invalid")

// Batas waktu per penerima supaya satu push endpoint lambat tidak
// menyeret seluruh fan-out.
const perRecipientTimeout = 5 * time.Second

/* =========================
   Collaborator contracts
========================= */

type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

type RecipientSource interface {
	ListAcceptedBySchool(ctx context.Context, schoolID uuid.UUID) ([]membershipModel.SchoolMembershipModel, error)
}

type PushSubscriptionStore interface {
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]model.PushSubscriptionModel, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.NotificationModel) error
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type PushSender interface {
	// Send wajib mengembalikan ErrSubscriptionGone (wrapped boleh)
	// kalau transport menolak subscription secara permanen.
	Send(ctx context.Context, sub model.PushSubscriptionModel, msg PushMessage) error
}

/* =========================
   Fan-out
========================= */

// FanoutService adalah broadcaster best-effort pasca mutasi membership.
// Notify TIDAK pernah mengembalikan error ke pemicunya: dispatch jalan
// di goroutine terpisah dan semua kegagalan hanya di-log.
type FanoutService struct {
	members RecipientSource
	subs    PushSubscriptionStore
	archive NotificationStore
	mail    EmailSender
	push    PushSender

	wg sync.WaitGroup
}

func NewFanoutService(
	members RecipientSource,
	subs PushSubscriptionStore,
	archive NotificationStore,
	mail EmailSender,
	push PushSender,
) *FanoutService {
	return &FanoutService{
		members: members,
		subs:    subs,
		archive: archive,
		mail:    mail,
		push:    push,
	}
}

// Notify menyiarkan ke semua anggota ACCEPT sekolah minus excludeUserIDs
// (biasanya aktor pemicu event). Return setelah dispatch DITERBITKAN,
// bukan setelah delivery selesai.
func (s *FanoutService) Notify(schoolID uuid.UUID, excludeUserIDs []uuid.UUID, title, body, url string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.dispatch(schoolID, excludeUserIDs, title, body, url)
	}()
}

// Wait menunggu semua dispatch in-flight selesai (dipakai graceful
// shutdown dan test).
func (s *FanoutService) Wait() {
	s.wg.Wait()
}

func (s *FanoutService) dispatch(schoolID uuid.UUID, excludeUserIDs []uuid.UUID, title, body, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	excluded := make(map[uuid.UUID]struct{}, len(excludeUserIDs))
	for _, id := range excludeUserIDs {
		excluded[id] = struct{}{}
	}

	members, err := s.members.ListAcceptedBySchool(ctx, schoolID)
	if err != nil {
		log.Printf("[ERROR] fan-out: list members of school %s: %v", schoolID, err)
		return
	}

	type recipient struct {
		userID uuid.UUID
		email  string
		name   string
	}
	var recipients []recipient
	var recipientIDs []uuid.UUID
	for _, m := range members {
		if m.SchoolMembershipUserID == nil {
			continue
		}
		if _, skip := excluded[*m.SchoolMembershipUserID]; skip {
			continue
		}
		r := recipient{userID: *m.SchoolMembershipUserID}
		if m.SchoolMembershipUserEmailSnapshot != nil {
			r.email = *m.SchoolMembershipUserEmailSnapshot
		}
		if m.SchoolMembershipUserNameSnapshot != nil {
			r.name = *m.SchoolMembershipUserNameSnapshot
		}
		recipients = append(recipients, r)
		recipientIDs = append(recipientIDs, r.userID)
	}

	// Arsip broadcast — gagal arsip tidak menghentikan delivery.
	archiveRow := &model.NotificationModel{
		NotificationSchoolID: schoolID,
		NotificationTitle:    title,
		NotificationBody:     body,
		NotificationTags:     pq.StringArray{"membership"},
	}
	if url != "" {
		archiveRow.NotificationURL = &url
	}
	if err := s.archive.Create(ctx, archiveRow); err != nil {
		log.Printf("[WARN] fan-out: archive notification for school %s: %v", schoolID, err)
	}

	if len(recipients) == 0 {
		return
	}

	subs, err := s.subs.ListByUserIDs(ctx, recipientIDs)
	if err != nil {
		log.Printf("[WARN] fan-out: list push subscriptions: %v", err)
		subs = nil
	}
	subsByUser := make(map[uuid.UUID][]model.PushSubscriptionModel)
	for _, sub := range subs {
		subsByUser[sub.PushSubscriptionUserID] = append(subsByUser[sub.PushSubscriptionUserID], sub)
	}

	msg := PushMessage{Title: title, Body: body, URL: url}

	// Tiap penerima independen: dua channel (push, email) dicoba
	// masing-masing; kegagalan satu penerima/channel tidak membatalkan
	// yang lain.
	var wg sync.WaitGroup
	for _, r := range recipients {
		wg.Add(1)
		go func(r recipient) {
			defer wg.Done()
			rctx, rcancel := context.WithTimeout(ctx, perRecipientTimeout)
			defer rcancel()
			s.deliverTo(rctx, r.userID, r.email, subsByUser[r.userID], msg)
		}(r)
	}
	wg.Wait()
}

func (s *FanoutService) deliverTo(ctx context.Context, userID uuid.UUID, email string, subs []model.PushSubscriptionModel, msg PushMessage) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, sub := range subs {
			if err := s.push.Send(ctx, sub, msg); err != nil {
				if errors.Is(err, ErrSubscriptionGone) {
					// self-healing: prune subscription mati;
					// gagal prune cuma di-log
					if derr := s.subs.DeleteByID(ctx, sub.PushSubscriptionID); derr != nil {
						log.Printf("[WARN] fan-out: prune subscription %s: %v", sub.PushSubscriptionID, derr)
					}
					continue
				}
				log.Printf("[WARN] fan-out: push to user %s: %v", userID, err)
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if email == "" {
			return
		}
		html := "<p>" + msg.Body + "</p>"
		if msg.URL != "" {
			html += `<p><a href="` + msg.URL + `">Open</a></p>`
		}
		if err := s.mail.Send(ctx, email, msg.Title, html); err != nil {
			log.Printf("[WARN] fan-out: email to user %s: %v", userID, err)
		}
	}()

	wg.Wait()
}

// PushPayload: payload JSON yang dikirim ke service worker.
func (m PushMessage) PushPayload() []byte {
	b, _ := json.Marshal(m)
	return b
}
