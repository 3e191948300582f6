package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "persona"

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics provides observability for persona operations and the HTTP surface.
type Metrics struct {
	PersonasCreated   prometheus.Counter
	PersonasPopulated prometheus.Counter
	PersonasDeleted   prometheus.Counter
	EmailConflicts    prometheus.Counter

	OperationDuration *prometheus.HistogramVec
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// New registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		PersonasCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "created_total",
			Help:      "Total number of personas created one at a time",
		}),
		PersonasPopulated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "populated_total",
			Help:      "Total number of personas inserted by bulk population",
		}),
		PersonasDeleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deleted_total",
			Help:      "Total number of personas deleted, singly or by reset",
		}),
		EmailConflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_conflicts_total",
			Help:      "Total number of writes rejected because the email was taken",
		}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations",
			Buckets:   durationBuckets,
		}, []string{"operation"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   durationBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveOperation records the duration of a service operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, start time.Time) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCreated() {
	m.PersonasCreated.Inc()
}

func (m *Metrics) AddPopulated(n int64) {
	m.PersonasPopulated.Add(float64(n))
}

func (m *Metrics) AddDeleted(n int64) {
	m.PersonasDeleted.Add(float64(n))
}

func (m *Metrics) IncrementConflicts() {
	m.EmailConflicts.Inc()
}
