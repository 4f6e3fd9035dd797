package manage_reservation

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

type fixture struct {
	uc           *UseCase
	availability *availability.Service
	reservations *reservations.Service
	notifier     *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
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

	f := &fixture{availability: av, reservations: res, notifier: &recordingNotifier{}}
	f.uc = NewUseCase(cat, av, admission.NewService(av, res, nil, log), res, f.notifier, log)
	return f
}

func (f *fixture) book(t *testing.T, sessionID, email string) *domain.Reservation {
	t.Helper()
	r, err := f.reservations.Create(context.Background(), domain.NewReservation{
		FormationID:   "stage",
		SessionID:     sessionID,
		CustomerName:  "Alice",
		CustomerEmail: email,
		PaymentMethod: domain.PaymentBankTransfer,
		Status:        domain.StatusTransferPending,
	})
	require.NoError(t, err)
	return r
}

func TestLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, "s1", "Alice@Example.com")

	resp, err := f.uc.Lookup(ctx, Credentials{ReservationID: r.ID, Email: "  alice@example.COM "})
	require.NoError(t, err)
	assert.Equal(t, r.ID, resp.Reservation.ID)
	require.Len(t, resp.Sessions, 2)
	assert.Equal(t, "s1", resp.Sessions[0].SessionID)
	assert.Equal(t, 1, resp.Sessions[0].ReservedCount)
	assert.Equal(t, 11, resp.Sessions[0].Remaining)

	_, err = f.uc.Lookup(ctx, Credentials{ReservationID: r.ID, Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = f.uc.Lookup(ctx, Credentials{ReservationID: "missing", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = f.uc.Lookup(ctx, Credentials{ReservationID: r.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChangeSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, "s1", "alice@example.com")
	creds := Credentials{ReservationID: r.ID, Email: "alice@example.com"}

	updated, err := f.uc.ChangeSession(ctx, creds, "s2")
	require.NoError(t, err)
	assert.Equal(t, "s2", updated.SessionID)
	assert.Equal(t, "Session 2", updated.SessionLabel)
	assert.Equal(t, 1, updated.SessionChangeCount)
	assert.Equal(t, domain.StatusTransferPending, updated.Status)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notifier.ReasonSessionChanged, f.notifier.sent[0].Reason)

	// место в s1 освобождено
	count, err := f.reservations.CountActive(ctx, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = f.uc.ChangeSession(ctx, creds, "s2")
	assert.ErrorIs(t, err, ErrSameSession)

	// сессия другой формации
	_, err = f.uc.ChangeSession(ctx, creds, "v1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestChangeSession_TargetFull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	one := 1.0
	_, err := f.availability.Upsert(ctx, "s2", domain.AvailabilityUpdate{Capacity: &one})
	require.NoError(t, err)
	f.book(t, "s2", "bob@example.com")

	r := f.book(t, "s1", "alice@example.com")
	_, err = f.uc.ChangeSession(ctx, Credentials{ReservationID: r.ID, Email: "alice@example.com"}, "s2")
	assert.ErrorIs(t, err, ErrSessionFull)

	stored, err := f.reservations.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "s1", stored.SessionID)
	assert.Equal(t, 0, stored.SessionChangeCount)
	assert.Empty(t, f.notifier.sent)
}

func TestChangeSession_TargetCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cancelled := true
	_, err := f.availability.Upsert(ctx, "s2", domain.AvailabilityUpdate{IsCancelled: &cancelled})
	require.NoError(t, err)

	r := f.book(t, "s1", "alice@example.com")
	_, err = f.uc.ChangeSession(ctx, Credentials{ReservationID: r.ID, Email: "alice@example.com"}, "s2")
	assert.ErrorIs(t, err, ErrSessionCancelled)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, "s1", "alice@example.com")
	creds := Credentials{ReservationID: r.ID, Email: "alice@example.com"}

	cancelled, err := f.uc.Cancel(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// запись сохраняется для истории
	stored, err := f.reservations.FindByID(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notifier.ReasonCancelled, f.notifier.sent[0].Reason)

	_, err = f.uc.Cancel(ctx, creds)
	assert.ErrorIs(t, err, ErrReservationCancelled)
	_, err = f.uc.ChangeSession(ctx, creds, "s2")
	assert.ErrorIs(t, err, ErrReservationCancelled)
}
