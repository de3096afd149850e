package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QueryMetrics records timing and outcome of warehouse reads, labelled by query name.
type QueryMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	rows     *prometheus.GaugeVec
}

// NewQueryMetrics registers the query metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewQueryMetrics(reg prometheus.Registerer) *QueryMetrics {
	if reg == nil {
		return &QueryMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_query_duration_seconds",
		Help:    "Duration of dashboard warehouse queries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_query_success_total",
		Help: "Successful dashboard warehouse queries.",
	}, []string{"query"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_query_failure_total",
		Help: "Failed dashboard warehouse queries.",
	}, []string{"query", "code"})
	rows := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_query_rows",
		Help: "Rows returned by the last successful dashboard query.",
	}, []string{"query"})
	reg.MustRegister(duration, success, failure, rows)
	return &QueryMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		rows:     rows,
	}
}

// ObserveDuration records the duration for the named query.
func (q *QueryMetrics) ObserveDuration(query string, duration time.Duration) {
	if q == nil || q.duration == nil {
		return
	}
	q.duration.WithLabelValues(normalizeLabel(query)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter and records the returned row count.
func (q *QueryMetrics) IncSuccess(query string, rows int) {
	if q == nil || q.success == nil {
		return
	}
	q.success.WithLabelValues(normalizeLabel(query)).Inc()
	q.rows.WithLabelValues(normalizeLabel(query)).Set(float64(rows))
}

// IncFailure increments the failure counter for the named query and error code.
func (q *QueryMetrics) IncFailure(query, code string) {
	if q == nil || q.failure == nil {
		return
	}
	q.failure.WithLabelValues(normalizeLabel(query), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
