package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/pkg/logger"
)

var discard = logger.NewWithWriter(io.Discard, logger.LevelDebug)

func sampleReservation() domain.Reservation {
	return domain.Reservation{
		ID:             "r1",
		FormationTitle: "Stage théâtre",
		SessionLabel:   "24 & 25 janvier",
		CustomerName:   "Alice",
		CustomerEmail:  "alice@example.com",
		PaymentMethod:  domain.PaymentBankTransfer,
		Status:         domain.StatusTransferPending,
	}
}

func TestTemplate_Render(t *testing.T) {
	tpl := Template{BusinessName: "Les Ateliers", DefaultLocation: "Nantes", IBAN: "FR76 0000", AdminCopy: "admin@example.com"}

	msg, err := tpl.Render(Notification{Reservation: sampleReservation(), Reason: ReasonPending})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "admin@example.com", msg.Bcc)
	assert.Equal(t, "Confirmation de réservation - Stage théâtre", msg.Subject)
	assert.Contains(t, msg.Text, "IBAN : FR76 0000")
	assert.Contains(t, msg.Text, "Lieu : Nantes")

	msg, err = tpl.Render(Notification{Reservation: sampleReservation(), Reason: ReasonConfirmed})
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "Votre virement a bien été reçu")
	assert.NotContains(t, msg.Text, "IBAN")

	msg, err = tpl.Render(Notification{Reservation: sampleReservation(), Reason: ReasonSessionChanged})
	require.NoError(t, err)
	assert.Equal(t, "Changement de session enregistré - Stage théâtre", msg.Subject)

	msg, err = tpl.Render(Notification{Reservation: sampleReservation(), Reason: ReasonCancelled})
	require.NoError(t, err)
	assert.Equal(t, "Confirmation d'annulation - Stage théâtre", msg.Subject)

	r := sampleReservation()
	r.CustomerEmail = " "
	_, err = tpl.Render(Notification{Reservation: r, Reason: ReasonPending})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

type recordingSink struct {
	mu    sync.Mutex
	got   []Notification
	fail  bool
	block chan struct{}
}

func (s *recordingSink) Send(_ context.Context, n Notification) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	if s.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

type counters struct {
	mu      sync.Mutex
	failed  int
	dropped int
}

func (c *counters) NotificationFailed(string) { c.mu.Lock(); c.failed++; c.mu.Unlock() }
func (c *counters) NotificationDropped()      { c.mu.Lock(); c.dropped++; c.mu.Unlock() }

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, DispatcherConfig{Workers: 2, QueueSize: 16}, nil, discard)

	for i := 0; i < 10; i++ {
		d.Notify(context.Background(), Notification{Reservation: sampleReservation(), Reason: ReasonPending})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	assert.Equal(t, 10, sink.count())

	// после Close уведомления отбрасываются, а не паникуют
	d.Notify(context.Background(), Notification{Reservation: sampleReservation(), Reason: ReasonPending})
	assert.Equal(t, 10, sink.count())
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	m := &counters{}
	d := NewDispatcher(sink, DispatcherConfig{Workers: 1, QueueSize: 1}, m, discard)

	// первый уходит воркеру, второй ждет в очереди, остальные теряются
	for i := 0; i < 5; i++ {
		d.Notify(context.Background(), Notification{Reservation: sampleReservation(), Reason: ReasonPending})
		time.Sleep(10 * time.Millisecond)
	}
	close(sink.block)
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 2, sink.count())
	assert.Equal(t, 3, m.dropped)
}

func TestDispatcher_FailureIsCountedNotPropagated(t *testing.T) {
	sink := &recordingSink{fail: true}
	m := &counters{}
	d := NewDispatcher(sink, DispatcherConfig{}, m, discard)

	d.Notify(context.Background(), Notification{Reservation: sampleReservation(), Reason: ReasonCancelled})
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 1, m.failed)
}

func TestMultiSink_JoinsErrors(t *testing.T) {
	ok := &recordingSink{}
	bad := &recordingSink{fail: true}

	err := MultiSink{ok, bad}.Send(context.Background(), Notification{Reservation: sampleReservation()})
	assert.Error(t, err)
	assert.Equal(t, 1, ok.count())
	assert.Equal(t, 1, bad.count())
}

type fakeChannel struct {
	declared  []string
	published []amqp.Publishing
	keys      []string
	failNext  bool
	closed    bool
}

func (c *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	c.declared = append(c.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if c.failNext {
		c.failNext = false
		return errors.New("channel closed")
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestAMQPSink_PublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	dials := 0
	sink := NewAMQPSink("amqp://test", "", Template{}, discard)
	sink.dial = func(string) (*amqp.Connection, amqpChannel, error) {
		dials++
		return nil, ch, nil
	}

	require.NoError(t, sink.Send(context.Background(), Notification{Reservation: sampleReservation(), Reason: ReasonConfirmed}))
	require.Len(t, ch.published, 1)
	assert.Equal(t, []string{DefaultQueue}, ch.declared)
	assert.Equal(t, DefaultQueue, ch.keys[0])

	pub := ch.published[0]
	assert.Equal(t, amqp.Persistent, pub.DeliveryMode)
	assert.Equal(t, "application/json", pub.ContentType)

	var ev Event
	require.NoError(t, json.Unmarshal(pub.Body, &ev))
	assert.Equal(t, ReasonConfirmed, ev.Reason)
	assert.Equal(t, "r1", ev.Reservation.ID)
	assert.Equal(t, "alice@example.com", ev.Message.To)

	// ошибка публикации сбрасывает канал, следующая отправка переподключается
	ch.failNext = true
	assert.ErrorIs(t, sink.Send(context.Background(), Notification{Reservation: sampleReservation(), Reason: ReasonConfirmed}), ErrPublish)
	assert.True(t, ch.closed)

	require.NoError(t, sink.Send(context.Background(), Notification{Reservation: sampleReservation(), Reason: ReasonConfirmed}))
	assert.Equal(t, 2, dials)
}

func TestAMQPSink_DialFailure(t *testing.T) {
	sink := NewAMQPSink("amqp://test", "q", Template{}, discard)
	sink.dial = func(string) (*amqp.Connection, amqpChannel, error) {
		return nil, nil, errors.New("connection refused")
	}
	err := sink.Send(context.Background(), Notification{Reservation: sampleReservation(), Reason: ReasonPending})
	assert.ErrorIs(t, err, ErrPublish)
}
