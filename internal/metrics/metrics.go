package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec
	ProviderLatency  *prometheus.HistogramVec
	PaymentRequests  *prometheus.CounterVec
	Checkouts        *prometheus.CounterVec
	Submissions      *prometheus.CounterVec
	Transitions      *prometheus.CounterVec
	Refunds          prometheus.Counter
	Notifications    *prometheus.CounterVec
	Errors           *prometheus.CounterVec

	registry *prometheus.Registry
}

// New builds collectors on a dedicated registry with the given namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total provider API requests by endpoint and status.",
		}, []string{"endpoint", "status"}),
		ProviderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Latency distribution for provider API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
		PaymentRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_verifications_total",
			Help:      "Total payment verification requests by outcome.",
		}, []string{"status"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Total checkout attempts by outcome.",
		}, []string{"outcome"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_submissions_total",
			Help:      "Total order submissions by resulting api status.",
		}, []string{"api_status"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Total applied order status transitions by source and target status.",
		}, []string{"source", "status"}),
		Refunds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_refunds_total",
			Help:      "Total refunds credited for cancelled orders.",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Total customer notifications by kind and outcome.",
		}, []string{"kind", "outcome"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total errors grouped by component.",
		}, []string{"component"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ProviderRequests,
		m.ProviderLatency,
		m.PaymentRequests,
		m.Checkouts,
		m.Submissions,
		m.Transitions,
		m.Refunds,
		m.Notifications,
		m.Errors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Error increments the error counter for component. Safe on a nil receiver.
func (m *Metrics) Error(component string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(component).Inc()
}

// Checkout counts a checkout attempt by outcome.
func (m *Metrics) Checkout(outcome string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(outcome).Inc()
}

// Submission counts a recorded submission outcome.
func (m *Metrics) Submission(apiStatus string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(apiStatus).Inc()
}

// Transition counts an applied status change; source is "reconcile" or "admin".
func (m *Metrics) Transition(source, status string, refunded bool) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(source, status).Inc()
	if refunded {
		m.Refunds.Inc()
	}
}

// Notification counts a notification attempt.
func (m *Metrics) Notification(kind string, delivered bool) {
	if m == nil {
		return
	}
	outcome := "sent"
	if !delivered {
		outcome = "failed"
	}
	m.Notifications.WithLabelValues(kind, outcome).Inc()
}
