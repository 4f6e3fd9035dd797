package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// DefaultQueue очередь, из которой почтовый воркер забирает письма
const DefaultQueue = "reservation.notifications"

// Event тело сообщения в очереди
type Event struct {
	Reason      Reason             `json:"reason"`
	Reservation domain.Reservation `json:"reservation"`
	Message     Message            `json:"message"`
	OccurredAt  time.Time          `json:"occurredAt"`
}

// amqpChannel часть *amqp.Channel, нужная для публикации
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPSink публикует уведомления в RabbitMQ. Соединение открывается лениво
// и переоткрывается после ошибки публикации.
type AMQPSink struct {
	url      string
	queue    string
	template Template
	logger   Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   amqpChannel
	dial func(url string) (*amqp.Connection, amqpChannel, error)
}

// NewAMQPSink создает sink для брокера по адресу url
func NewAMQPSink(url, queue string, template Template, logger Logger) *AMQPSink {
	if queue == "" {
		queue = DefaultQueue
	}
	return &AMQPSink{
		url:      url,
		queue:    queue,
		template: template,
		logger:   logger,
		dial:     dialAMQP,
	}
}

func dialAMQP(url string) (*amqp.Connection, amqpChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

func (s *AMQPSink) Send(ctx context.Context, n Notification) error {
	msg, err := s.template.Render(n)
	if err != nil {
		return err
	}

	body, err := json.Marshal(Event{
		Reason:      n.Reason,
		Reservation: n.Reservation,
		Message:     msg,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.channelLocked()
	if err != nil {
		return fmt.Errorf("%w: connect: %v", ErrPublish, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(n.Reason),
		MessageId:    n.Reservation.ID + ":" + string(n.Reason),
		Body:         body,
	}
	// default exchange, routing key = имя очереди
	if err := ch.PublishWithContext(ctx, "", s.queue, false, false, pub); err != nil {
		s.resetLocked()
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает канал и соединение
func (s *AMQPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return nil
}

func (s *AMQPSink) channelLocked() (amqpChannel, error) {
	if s.ch != nil {
		return s.ch, nil
	}

	conn, ch, err := s.dial(s.url)
	if err != nil {
		s.logger.Error("Notify: rabbitmq dial failed: %v", err)
		return nil, err
	}
	// durable, чтобы письма пережили рестарт брокера
	if _, err := ch.QueueDeclare(s.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		if conn != nil {
			_ = conn.Close()
		}
		s.logger.Error("Notify: rabbitmq queue declare failed: %v", err)
		return nil, err
	}

	s.conn, s.ch = conn, ch
	s.logger.Info("Notify: connected to rabbitmq, queue=%s", s.queue)
	return ch, nil
}

func (s *AMQPSink) resetLocked() {
	if s.ch != nil {
		_ = s.ch.Close()
		s.ch = nil
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
