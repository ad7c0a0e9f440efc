// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fulfillment_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PickupTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_pickup_transitions_total",
			Help: "Total number of committed pickup status transitions by target status",
		},
		[]string{"status"},
	)

	AssignmentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_assignment_runs_total",
			Help: "Total number of automatic assignment runs by outcome",
		},
		[]string{"outcome"},
	)
)

// Register registers all Prometheus metrics.
func Register() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(PickupTransitionsTotal)
	prometheus.MustRegister(AssignmentRunsTotal)
}
