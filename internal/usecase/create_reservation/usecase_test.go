package create_reservation

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
	"github.com/m04kA/atelier-booking/internal/integrations/payment"
	"github.com/m04kA/atelier-booking/internal/service/admission"
	"github.com/m04kA/atelier-booking/internal/service/availability"
	"github.com/m04kA/atelier-booking/internal/service/catalog"
	"github.com/m04kA/atelier-booking/internal/service/reservations"
	"github.com/m04kA/atelier-booking/pkg/logger"
)

type fakeGateway struct {
	calls int
	err   error
}

func (g *fakeGateway) CreateCheckout(_ context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Checkout{ExternalID: "cs_test_" + req.Session.ID, URL: "https://checkout.example/pay"}, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifier.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg notifier.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

type createdCounter map[string]int

func (c createdCounter) ReservationCreated(method string) { c[method]++ }

type fixture struct {
	uc           *UseCase
	availability *availability.Service
	reservations *reservations.Service
	gateway      *fakeGateway
	notifier     *recordingNotifier
	created      createdCounter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, logger.LevelDebug)
	store := records.NewMemoryStore()

	base := []domain.Formation{{
		ID:       "stage",
		Title:    "Stage théâtre",
		Price:    285,
		Location: "Paris",
		Sessions: []domain.SessionOption{
			{ID: "s1", Label: "Session 1", StartDate: "2025-01-24", EndDate: "2025-01-25"},
			{ID: "s2", Label: "Session 2", StartDate: "2025-02-07", EndDate: "2025-02-08"},
		},
	}}
	cat := catalog.NewService(store, base, log)
	av := availability.NewService(store, 12, log)
	require.NoError(t, av.Reconcile(context.Background(), base))
	res := reservations.NewService(store, 5*time.Minute, nil, nil, log)

	f := &fixture{
		availability: av,
		reservations: res,
		gateway:      &fakeGateway{},
		notifier:     &recordingNotifier{},
		created:      createdCounter{},
	}
	f.uc = NewUseCase(cat, admission.NewService(av, res, nil, log), res, f.gateway, f.notifier, f.created, "FR76 0000", log)
	return f
}

func (f *fixture) setCapacity(t *testing.T, sessionID string, capacity float64) {
	t.Helper()
	_, err := f.availability.Upsert(context.Background(), sessionID, domain.AvailabilityUpdate{Capacity: &capacity})
	require.NoError(t, err)
}

func request(sessionID string) *Request {
	return &Request{
		FormationID:   "stage",
		SessionID:     sessionID,
		CustomerName:  " Alice ",
		CustomerEmail: "alice@example.com",
	}
}

func TestExecuteTransfer_CreatesPendingAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.ExecuteTransfer(ctx, request("s1"))
	require.NoError(t, err)
	assert.Equal(t, "FR76 0000", resp.IBAN)
	assert.Equal(t, string(domain.StatusTransferPending), resp.Status)

	stored, err := f.reservations.FindByID(ctx, resp.ReservationID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Alice", stored.CustomerName)
	assert.Equal(t, "Stage théâtre", stored.FormationTitle)
	assert.Equal(t, "Session 1", stored.SessionLabel)
	assert.Equal(t, domain.PaymentBankTransfer, stored.PaymentMethod)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notifier.ReasonPending, f.notifier.sent[0].Reason)
	assert.Equal(t, "Paris", f.notifier.sent[0].Location)
	assert.Equal(t, 1, f.created["bank-transfer"])
}

func TestExecuteTransfer_LastSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setCapacity(t, "s1", 1)

	_, err := f.uc.ExecuteTransfer(ctx, request("s1"))
	require.NoError(t, err)

	_, err = f.uc.ExecuteTransfer(ctx, request("s1"))
	assert.ErrorIs(t, err, ErrSessionFull)

	count, err := f.reservations.CountActive(ctx, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, f.notifier.sent, 1)
}

func TestExecuteTransfer_SessionStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	closed := false
	_, err := f.availability.Upsert(ctx, "s1", domain.AvailabilityUpdate{IsOpen: &closed})
	require.NoError(t, err)
	_, err = f.uc.ExecuteTransfer(ctx, request("s1"))
	assert.ErrorIs(t, err, ErrSessionClosed)

	cancelled := true
	_, err = f.availability.Upsert(ctx, "s2", domain.AvailabilityUpdate{IsCancelled: &cancelled})
	require.NoError(t, err)
	_, err = f.uc.ExecuteTransfer(ctx, request("s2"))
	assert.ErrorIs(t, err, ErrSessionCancelled)
}

func TestExecuteTransfer_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := request("s1")
	req.CustomerEmail = "not-an-email"
	_, err := f.uc.ExecuteTransfer(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.ExecuteTransfer(ctx, &Request{FormationID: "stage", SessionID: "s1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.ExecuteTransfer(ctx, request("unknown"))
	assert.ErrorIs(t, err, ErrSessionNotFound)

	req = request("s1")
	req.FormationID = "other"
	_, err = f.uc.ExecuteTransfer(ctx, req)
	assert.ErrorIs(t, err, ErrFormationNotFound)
}

func TestExecuteCheckout_CreatesCardPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.ExecuteCheckout(ctx, request("s2"))
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/pay", resp.URL)

	stored, err := f.reservations.FindByExternalPaymentSessionID(ctx, "cs_test_s2")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, resp.ReservationID, stored.ID)
	assert.Equal(t, domain.StatusCardPending, stored.Status)
	assert.Equal(t, domain.PaymentCard, stored.PaymentMethod)

	// подтверждение придет вместе с событием оплаты
	assert.Empty(t, f.notifier.sent)
	assert.Equal(t, 1, f.created["card"])
}

func TestExecuteCheckout_GatewayFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gateway.err = errors.New("stripe unavailable")

	_, err := f.uc.ExecuteCheckout(ctx, request("s1"))
	assert.ErrorIs(t, err, ErrPaymentGateway)

	all, err := f.reservations.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	f.gateway.err = payment.ErrNotConfigured
	_, err = f.uc.ExecuteCheckout(ctx, request("s1"))
	assert.ErrorIs(t, err, ErrPaymentNotConfigured)
}

func TestExecuteCheckout_FullSessionSkipsGateway(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setCapacity(t, "s1", 0)

	_, err := f.uc.ExecuteCheckout(ctx, request("s1"))
	assert.ErrorIs(t, err, ErrSessionFull)
	assert.Equal(t, 0, f.gateway.calls)
}
