package metrics

import "github.com/prometheus/client_golang/prometheus"

// Summary generation Prometheus metrics.
var (
	SummaryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumerank",
			Name:      "summary_requests_total",
			Help:      "Total number of summary generation requests",
		},
		[]string{"provider", "model", "status"},
	)

	SummaryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumerank",
			Name:      "summary_request_duration_seconds",
			Help:      "Summary generation request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	SummaryFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumerank",
			Name:      "summary_fallback_total",
			Help:      "Summaries served by the local fallback template",
		},
		[]string{"reason"}, // "no_provider" / "provider_error" / "timeout" / "empty_response"
	)
)

var summaryMetricsRegistered bool

// RegisterSummaryMetrics registers Prometheus summary metrics. Must be called once from main.
func RegisterSummaryMetrics() {
	if summaryMetricsRegistered {
		return
	}
	prometheus.MustRegister(SummaryRequestsTotal)
	prometheus.MustRegister(SummaryRequestDuration)
	prometheus.MustRegister(SummaryFallbackTotal)
	summaryMetricsRegistered = true
}
