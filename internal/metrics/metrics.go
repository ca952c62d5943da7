package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanhome_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cleanhome_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanhome_bookings_created_total",
			Help: "Total number of bookings created",
		},
		[]string{"service_type"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanhome_booking_transitions_total",
			Help: "Booking lifecycle transitions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	BookingCancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanhome_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
		[]string{"reason", "role"},
	)

	BookingRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cleanhome_booking_revenue_bani_total",
			Help: "Sum of total prices of created bookings in bani",
		},
	)

	AvailabilityLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanhome_availability_lookups_total",
			Help: "Availability lookups by cache result",
		},
		[]string{"cache"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanhome_payments_total",
			Help: "Total number of payments by status",
		},
		[]string{"status"},
	)

	WizardDraftsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanhome_wizard_drafts_total",
			Help: "Booking wizard drafts by event",
		},
		[]string{"event"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanhome_notifications_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"type"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordBookingCreated counts a new booking and its total price.
func RecordBookingCreated(serviceType string, totalPrice int64) {
	BookingsCreatedTotal.WithLabelValues(serviceType).Inc()
	BookingRevenue.Add(float64(totalPrice))
}

func RecordTransition(action, outcome string) {
	BookingTransitionsTotal.WithLabelValues(action, outcome).Inc()
}

func RecordCancellation(reason, role string) {
	BookingCancellationsTotal.WithLabelValues(reason, role).Inc()
}

// RecordAvailabilityLookup records whether a lookup was served from cache ("hit") or not ("miss").
func RecordAvailabilityLookup(cache string) {
	AvailabilityLookupsTotal.WithLabelValues(cache).Inc()
}

func RecordPayment(status string) {
	PaymentsTotal.WithLabelValues(status).Inc()
}

func RecordWizardEvent(event string) {
	WizardDraftsTotal.WithLabelValues(event).Inc()
}

func RecordNotification(notificationType string) {
	NotificationsSentTotal.WithLabelValues(notificationType).Inc()
}
