package admin

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
	"github.com/m04kA/atelier-booking/internal/service/admission"
	"github.com/m04kA/atelier-booking/internal/service/availability"
	"github.com/m04kA/atelier-booking/internal/service/catalog"
	"github.com/m04kA/atelier-booking/internal/service/contact"
	"github.com/m04kA/atelier-booking/internal/service/news"
	"github.com/m04kA/atelier-booking/internal/service/reservations"
	"github.com/m04kA/atelier-booking/pkg/logger"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifier.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg notifier.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *recordingNotifier) reasons() []notifier.Reason {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notifier.Reason, 0, len(n.sent))
	for _, m := range n.sent {
		out = append(out, m.Reason)
	}
	return out
}

type fixture struct {
	svc          *Service
	availability *availability.Service
	reservations *reservations.Service
	contacts     *contact.Service
	notifier     *recordingNotifier
}

func newFixture(t *testing.T, adminKey string) *fixture {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, logger.LevelDebug)
	store := records.NewMemoryStore()

	base := []domain.Formation{
		{
			ID:       "stage",
			Title:    "Stage théâtre",
			Location: "Paris",
			Sessions: []domain.SessionOption{
				{ID: "s1", Label: "Session 1", StartDate: "2025-01-24", EndDate: "2025-01-25"},
				{ID: "s2", Label: "Session 2", StartDate: "2025-02-07", EndDate: "2025-02-08"},
			},
		},
		{
			ID:       "voix",
			Title:    "Cours voix",
			Sessions: []domain.SessionOption{{ID: "v1", Label: "Voix 1", StartDate: "2025-03-01", EndDate: "2025-03-01"}},
		},
	}
	cat := catalog.NewService(store, base, log)
	av := availability.NewService(store, 12, log)
	require.NoError(t, av.Reconcile(context.Background(), base))
	res := reservations.NewService(store, 5*time.Minute, nil, nil, log)
	contacts := contact.NewService(store, log)

	f := &fixture{availability: av, reservations: res, contacts: contacts, notifier: &recordingNotifier{}}
	f.svc = NewService(adminKey, cat, av, res, admission.NewService(av, res, nil, log),
		contacts, news.NewService(store, log), f.notifier, log)
	return f
}

func (f *fixture) book(t *testing.T, sessionID string) *domain.Reservation {
	t.Helper()
	r, err := f.reservations.Create(context.Background(), domain.NewReservation{
		FormationID:    "stage",
		FormationTitle: "Stage théâtre",
		SessionID:      sessionID,
		CustomerName:   "Alice",
		CustomerEmail:  "alice@example.com",
		PaymentMethod:  domain.PaymentBankTransfer,
		Status:         domain.StatusTransferPending,
	})
	require.NoError(t, err)
	return r
}

func strPtr(v string) *string      { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestAuthorize(t *testing.T) {
	assert.ErrorIs(t, newFixture(t, "").svc.Authorize("anything"), ErrNotConfigured)

	svc := newFixture(t, "secret").svc
	assert.NoError(t, svc.Authorize("secret"))
	assert.ErrorIs(t, svc.Authorize("Secret"), ErrUnauthorized)
	assert.ErrorIs(t, svc.Authorize(""), ErrUnauthorized)
}

func TestSetAvailability(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()

	av, err := f.svc.SetAvailability(ctx, "s1", domain.AvailabilityUpdate{Capacity: floatPtr(3.7), IsCancelled: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, 3, av.Capacity)
	assert.True(t, av.IsCancelled)
	assert.False(t, av.IsOpen)

	_, err = f.svc.SetAvailability(ctx, "s1", domain.AvailabilityUpdate{Capacity: floatPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.SetAvailability(ctx, "unknown", domain.AvailabilityUpdate{IsOpen: boolPtr(true)})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAddAndRemoveSession(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()

	session, err := f.svc.AddSession(ctx, "stage", domain.SessionDraft{
		ID: "s3", Label: "Session 3", StartDate: "2025-04-01", EndDate: "2025-04-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3", session.ID)

	overview, err := f.svc.GetAvailabilityOverview(ctx)
	require.NoError(t, err)
	require.Len(t, overview, 4)
	assert.Equal(t, "s3", overview[2].SessionID)
	assert.Equal(t, 12, overview[2].Capacity)

	_, err = f.svc.AddSession(ctx, "stage", domain.SessionDraft{ID: "s1", Label: "x", StartDate: "2025-04-01", EndDate: "2025-04-02"})
	assert.ErrorIs(t, err, ErrDuplicateSession)

	_, err = f.svc.AddSession(ctx, "missing", domain.SessionDraft{Label: "x", StartDate: "2025-04-01", EndDate: "2025-04-02"})
	assert.ErrorIs(t, err, ErrFormationNotFound)

	require.NoError(t, f.svc.RemoveSession(ctx, "s3"))
	require.NoError(t, f.svc.RemoveSession(ctx, "s1"))
	assert.ErrorIs(t, f.svc.RemoveSession(ctx, "s1"), ErrSessionNotFound)

	overview, err = f.svc.GetAvailabilityOverview(ctx)
	require.NoError(t, err)
	require.Len(t, overview, 2)
	assert.Equal(t, "s2", overview[0].SessionID)
}

func TestReassign_MovesWithAdmission(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()
	r := f.book(t, "s1")

	updated, err := f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{SessionID: strPtr("s2")})
	require.NoError(t, err)
	assert.Equal(t, "s2", updated.SessionID)
	assert.Equal(t, "Session 2", updated.SessionLabel)
	assert.Equal(t, []notifier.Reason{notifier.ReasonSessionChanged}, f.notifier.reasons())

	// s1 полная: перенос обратно отклоняется
	_, err = f.svc.SetAvailability(ctx, "s1", domain.AvailabilityUpdate{Capacity: floatPtr(0)})
	require.NoError(t, err)
	_, err = f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{SessionID: strPtr("s1")})
	assert.ErrorIs(t, err, ErrSessionFull)

	// перенос в другую формацию
	updated, err = f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{FormationID: strPtr("voix"), SessionID: strPtr("v1")})
	require.NoError(t, err)
	assert.Equal(t, "voix", updated.FormationID)
	assert.Equal(t, "Cours voix", updated.FormationTitle)

	_, err = f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{SessionID: strPtr("s2")})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestReassign_StatusOnly(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()
	r := f.book(t, "s1")

	updated, err := f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{Status: strPtr("transfer_confirmed")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTransferConfirmed, updated.Status)
	assert.Equal(t, []notifier.Reason{notifier.ReasonConfirmed}, f.notifier.reasons())

	_, err = f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{Status: strPtr("paid")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ReassignOrChangeStatus(ctx, "missing", ReservationChange{Status: strPtr("cancelled")})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReassign_ReactivationChecksCapacity(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()
	r := f.book(t, "s1")

	_, err := f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{Status: strPtr("cancelled")})
	require.NoError(t, err)

	_, err = f.svc.SetAvailability(ctx, "s1", domain.AvailabilityUpdate{Capacity: floatPtr(1)})
	require.NoError(t, err)
	f.book(t, "s1")

	_, err = f.svc.ReassignOrChangeStatus(ctx, r.ID, ReservationChange{Status: strPtr("transfer_confirmed")})
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()
	r := f.book(t, "s1")

	require.NoError(t, f.svc.DeleteReservation(ctx, r.ID))
	assert.Equal(t, []notifier.Reason{notifier.ReasonCancelled}, f.notifier.reasons())
	assert.Equal(t, "Paris", f.notifier.sent[0].Location)

	found, err := f.reservations.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.ErrorIs(t, f.svc.DeleteReservation(ctx, r.ID), ErrReservationNotFound)
}

func TestListReservations_RecentFirst(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()
	first := f.book(t, "s1")
	time.Sleep(2 * time.Millisecond)
	second := f.book(t, "s2")

	list, err := f.svc.ListReservations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestContactMessages(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()

	msg, err := f.contacts.Submit(ctx, "Alice", "alice@example.com", "Bonjour")
	require.NoError(t, err)

	updated, err := f.svc.UpdateContactStatus(ctx, msg.ID, "handled")
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusHandled, updated.Status)

	_, err = f.svc.UpdateContactStatus(ctx, msg.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := f.svc.ListContactMessages(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.svc.DeleteContactMessage(ctx, msg.ID))
	assert.ErrorIs(t, f.svc.DeleteContactMessage(ctx, msg.ID), ErrMessageNotFound)
}

func TestNews(t *testing.T) {
	f := newFixture(t, "k")
	ctx := context.Background()

	item, err := f.svc.CreateNews(ctx, "Titre", "Texte", "")
	require.NoError(t, err)

	_, err = f.svc.UpdateNews(ctx, item.ID, domain.NewsPatch{Content: strPtr("Nouveau")})
	require.NoError(t, err)

	_, err = f.svc.CreateNews(ctx, "", "Texte", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.svc.DeleteNews(ctx, item.ID))
	assert.ErrorIs(t, f.svc.DeleteNews(ctx, item.ID), ErrNewsNotFound)
}
