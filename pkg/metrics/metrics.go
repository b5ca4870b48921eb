package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dietdash"

var (
	upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to the diet API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	upstreamErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "errors_total",
		Help:      "Failed calls to the diet API.",
	}, []string{"endpoint"})

	dashboardBuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "builds_total",
		Help:      "Dashboard computations by outcome.",
	}, []string{"outcome"})

	analysisCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "analysis_cache_total",
		Help:      "Analysis memo lookups by result.",
	}, []string{"result"})

	skippedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "skipped_records_total",
		Help:      "Records excluded from aggregation.",
	}, []string{"kind"})

	mealsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "meals_logged_total",
		Help:      "Meal records posted to the diet API by slot.",
	}, []string{"slot"})

	reportsExported = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "reports_exported_total",
		Help:      "CSV reports written to object storage.",
	})
)

func init() {
	prometheus.MustRegister(upstreamDuration, upstreamErrors, dashboardBuilds, analysisCache, skippedRecords, mealsLogged, reportsExported)
}

// ObserveUpstream records the latency of one diet API call and counts it as failed when err is set.
func ObserveUpstream(endpoint string, elapsed time.Duration, err error) {
	upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	if err != nil {
		upstreamErrors.WithLabelValues(endpoint).Inc()
	}
}

// RecordBuild counts a finished dashboard computation.
func RecordBuild(outcome string) {
	dashboardBuilds.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup counts an analysis memo hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	analysisCache.WithLabelValues(result).Inc()
}

// RecordSkipped counts records dropped from aggregation.
func RecordSkipped(kind string, n int) {
	if n <= 0 {
		return
	}
	skippedRecords.WithLabelValues(kind).Add(float64(n))
}

// RecordMealLogged counts a meal posted upstream.
func RecordMealLogged(slot string) {
	mealsLogged.WithLabelValues(slot).Inc()
}

// RecordReportExported counts an uploaded report.
func RecordReportExported() {
	reportsExported.Inc()
}
