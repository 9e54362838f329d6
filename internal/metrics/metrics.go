package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_engine_bookings_total",
			Help: "Booking attempts by outcome code",
		},
		[]string{"operation", "outcome"},
	)

	LifecycleTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_engine_lifecycle_transitions_total",
			Help: "Persisted appointment status transitions",
		},
		[]string{"from", "to"},
	)

	AvailabilityMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_engine_availability_mutations_total",
			Help: "Availability window mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	OutboxPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_engine_outbox_published_total",
			Help: "Outbox events handed to the broker",
		},
		[]string{"event_type"},
	)

	OutboxDiscardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_engine_outbox_discarded_total",
			Help: "Outbox events dropped because no broker is configured",
		},
		[]string{"event_type"},
	)

	SweepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_engine_lifecycle_sweeps_total",
			Help: "Background lifecycle sweeps by result",
		},
		[]string{"result"},
	)

	AuditDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_engine_audit_dropped_total",
			Help: "Audit events dropped because the queue was full",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_engine_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_engine_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func RecordBooking(operation, outcome string) {
	BookingsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordTransition(from, to string) {
	LifecycleTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordAvailability(operation, outcome string) {
	AvailabilityMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordOutboxPublished(eventType string, n int) {
	OutboxPublishedTotal.WithLabelValues(eventType).Add(float64(n))
}

func RecordOutboxDiscarded(eventType string, n int) {
	OutboxDiscardedTotal.WithLabelValues(eventType).Add(float64(n))
}

func RecordSweep(result string) {
	SweepRunsTotal.WithLabelValues(result).Inc()
}

func RecordAuditDropped() {
	AuditDroppedTotal.Inc()
}

func RecordHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}
