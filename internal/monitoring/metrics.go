package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tdnguyen2104/virtual-queue/internal/domain"
)

var (
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_bookings_total",
			Help: "Total bookings admitted per service",
		},
		[]string{"service_id"},
	)

	bookingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_bookings_rejected_total",
			Help: "Total rejected booking attempts per service and reason",
		},
		[]string{"service_id", "reason"},
	)

	servedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_served_total",
			Help: "Total completed services per service",
		},
		[]string{"service_id"},
	)

	waitingGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "queue_waiting",
			Help: "Current waiting-line length per service",
		},
		[]string{"service_id"},
	)

	estWaitGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "queue_estimated_wait_minutes",
			Help: "Current wait estimate for a new arrival per service",
		},
		[]string{"service_id"},
	)
)

func RecordBooking(serviceID string) {
	bookingsTotal.WithLabelValues(serviceID).Inc()
}

func RecordBookingRejected(serviceID, reason string) {
	bookingsRejected.WithLabelValues(serviceID, reason).Inc()
}

func RecordServed(serviceID string) {
	servedTotal.WithLabelValues(serviceID).Inc()
}

// UpdateQueueGauges refreshes the per-service gauges from a live status view.
func UpdateQueueGauges(statuses []domain.ServiceStatus) {
	for _, s := range statuses {
		waitingGauge.WithLabelValues(s.ServiceID).Set(float64(s.Waiting))
		estWaitGauge.WithLabelValues(s.ServiceID).Set(float64(s.EstWaitNewUser))
	}
}
