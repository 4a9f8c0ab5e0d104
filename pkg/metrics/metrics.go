package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collectors of the service.
// All recording methods are safe on a nil receiver, so callers can pass a nil *Metrics when metrics are disabled.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	DBTransactionsTotal *prometheus.CounterVec

	BookingsTotal        *prometheus.CounterVec
	PaymentOrdersTotal   *prometheus.CounterVec
	PaymentVerifications *prometheus.CounterVec
	NotificationsTotal   *prometheus.CounterVec
	JobRunsTotal         *prometheus.CounterVec
}

// New creates collectors and registers them in the default registry.
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry creates collectors and registers them in reg.
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := namespace(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by method, route and status code.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database call latency by operation.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Open connections in the pool.",
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Connections currently in use.",
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_idle_connections",
			Help:      "Idle connections in the pool.",
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for.",
		}),
		DBTransactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "db_transactions_total",
			Help:      "Finished transactions by outcome.",
		}, []string{"outcome"}),
		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bookings_total",
			Help:      "Booking attempts by result.",
		}, []string{"result"}),
		PaymentOrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "payment_orders_total",
			Help:      "Gateway order creations by result.",
		}, []string{"result"}),
		PaymentVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "payment_verifications_total",
			Help:      "Payment signature verifications by result.",
		}, []string{"result"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "notifications_total",
			Help:      "Notification deliveries by channel and result.",
		}, []string{"channel", "result"}),
		JobRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by job and result.",
		}, []string{"job", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTransactionsTotal,
		m.BookingsTotal,
		m.PaymentOrdersTotal,
		m.PaymentVerifications,
		m.NotificationsTotal,
		m.JobRunsTotal,
	)

	return m
}

// BookingResult records the outcome of a booking attempt: created, conflict, contention, error.
func (m *Metrics) BookingResult(result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(result).Inc()
}

// PaymentOrderResult records the outcome of a gateway order creation.
func (m *Metrics) PaymentOrderResult(result string) {
	if m == nil {
		return
	}
	m.PaymentOrdersTotal.WithLabelValues(result).Inc()
}

// PaymentVerificationResult records the outcome of a signature verification.
func (m *Metrics) PaymentVerificationResult(result string) {
	if m == nil {
		return
	}
	m.PaymentVerifications.WithLabelValues(result).Inc()
}

// NotificationResult records a notification delivery attempt.
func (m *Metrics) NotificationResult(channel, result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(channel, result).Inc()
}

// JobResult records a scheduled job run.
func (m *Metrics) JobResult(job, result string) {
	if m == nil {
		return
	}
	m.JobRunsTotal.WithLabelValues(job, result).Inc()
}

func namespace(serviceName string) string {
	ns := strings.ToLower(serviceName)
	ns = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(ns)
	return ns
}
