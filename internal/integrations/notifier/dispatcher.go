package notifier

import (
	"context"
	"sync"
	"time"
)

const (
	defaultWorkers     = 2
	defaultQueueSize   = 256
	defaultSendTimeout = 10 * time.Second
)

// DispatcherConfig параметры очереди уведомлений
type DispatcherConfig struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

// Dispatcher асинхронно доставляет уведомления после фиксации изменений в реестре.
// Notify никогда не блокирует запрос: при переполненной очереди уведомление теряется
// и это видно в логе и метриках.
type Dispatcher struct {
	sink        Sink
	queue       chan Notification
	sendTimeout time.Duration
	metrics     Metrics
	logger      Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher запускает воркеры. metrics может быть nil.
func NewDispatcher(sink Sink, cfg DispatcherConfig, metrics Metrics, logger Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}

	d := &Dispatcher{
		sink:        sink,
		queue:       make(chan Notification, cfg.QueueSize),
		sendTimeout: cfg.SendTimeout,
		metrics:     metrics,
		logger:      logger,
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Notify ставит уведомление в очередь. Контекст запроса не передается воркеру:
// запрос может завершиться раньше, чем письмо будет отправлено.
func (d *Dispatcher) Notify(_ context.Context, n Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Notify: dispatcher closed, dropping reason=%s reservation=%s", n.Reason, n.Reservation.ID)
		d.dropped()
		return
	}

	select {
	case d.queue <- n:
	default:
		d.logger.Warn("Notify: queue full, dropping reason=%s reservation=%s", n.Reason, n.Reservation.ID)
		d.dropped()
	}
}

// Close перестает принимать уведомления и ждет, пока очередь опустеет
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.sink.Send(ctx, n); err != nil {
		d.logger.Error("Notify: failed to deliver reason=%s reservation=%s: %v", n.Reason, n.Reservation.ID, err)
		if d.metrics != nil {
			d.metrics.NotificationFailed(string(n.Reason))
		}
		return
	}
	d.logger.Info("Notify: delivered reason=%s reservation=%s", n.Reason, n.Reservation.ID)
}

func (d *Dispatcher) dropped() {
	if d.metrics != nil {
		d.metrics.NotificationDropped()
	}
}
