package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hotelier"

var (
	once sync.Once

	checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout attempts by outcome.",
		},
		[]string{"outcome"},
	)

	checkoutFailedStep = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_failed_step_total",
			Help:      "Count of failed checkouts by workflow step.",
		},
		[]string{"step"},
	)

	assignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignment_total",
			Help:      "Count of resource assignments by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	integrityWarnings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calendar_integrity_warning_total",
			Help:      "Count of calendar cells covered by more than one occupancy record.",
		},
		[]string{"kind"},
	)

	httpRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern, method and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(checkouts, checkoutFailedStep, assignments, integrityWarnings, httpRequests)
	})
}

func IncCheckout(outcome string) {
	checkouts.WithLabelValues(outcome).Inc()
}

func IncCheckoutFailedStep(step string) {
	checkoutFailedStep.WithLabelValues(step).Inc()
}

func IncAssignment(kind, outcome string) {
	assignments.WithLabelValues(kind, outcome).Inc()
}

func AddIntegrityWarnings(kind string, count int) {
	if count <= 0 {
		return
	}

	integrityWarnings.WithLabelValues(kind).Add(float64(count))
}

func ObserveHTTPRequest(route, method, status string, seconds float64) {
	httpRequests.WithLabelValues(route, method, status).Observe(seconds)
}
