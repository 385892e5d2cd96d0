package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hangarbook",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hangarbook",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hangarbook",
			Name:      "booking_updated_total",
			Help:      "Count of bookings updated.",
		},
	)

	bookingDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hangarbook",
			Name:      "booking_deleted_total",
			Help:      "Count of bookings deleted.",
		},
	)

	storeErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hangarbook",
			Name:      "store_errors_total",
			Help:      "Count of backend store failures surfaced as 500s.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingCreated, bookingUpdated, bookingDeleted, storeErrors)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingUpdated() {
	bookingUpdated.Inc()
}

func IncBookingDeleted() {
	bookingDeleted.Inc()
}

func IncStoreError() {
	storeErrors.Inc()
}
