package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReservationsCreated  *prometheus.CounterVec
	AdmissionRejected    *prometheus.CounterVec
	PendingExpired       prometheus.Counter
	NotificationsFailed  *prometheus.CounterVec
	NotificationsDropped prometheus.Counter
}

// New регистрирует метрики в переданном registerer.
// В main передаётся prometheus.DefaultRegisterer, в тестах - prometheus.NewRegistry().
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ReservationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations created, by payment method",
			ConstLabels: constLabels,
		}, []string{"payment_method"}),

		AdmissionRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_admission_rejected_total",
			Help:        "Booking admissions refused, by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		PendingExpired: factory.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_pending_expired_total",
			Help:        "Pending card reservations cancelled by the timeout sweep",
			ConstLabels: constLabels,
		}),

		NotificationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_failed_total",
			Help:        "Notifications the sink failed to deliver, by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		NotificationsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_dropped_total",
			Help:        "Notifications dropped because the dispatch queue was full",
			ConstLabels: constLabels,
		}),
	}
}

// Методы ниже nil-safe: сервисы могут работать без метрик

func (m *Metrics) ReservationCreated(paymentMethod string) {
	if m == nil {
		return
	}
	m.ReservationsCreated.WithLabelValues(paymentMethod).Inc()
}

func (m *Metrics) AdmissionRefused(reason string) {
	if m == nil {
		return
	}
	m.AdmissionRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) PendingReservationsExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.PendingExpired.Add(float64(n))
}

func (m *Metrics) NotificationFailed(reason string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(reason).Inc()
}

func (m *Metrics) NotificationDropped() {
	if m == nil {
		return
	}
	m.NotificationsDropped.Inc()
}
