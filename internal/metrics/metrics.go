package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "careervision_sessions_started_total",
			Help: "Total number of surveys started or restarted",
		},
	)

	SessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "careervision_sessions_completed_total",
			Help: "Total number of sessions that reached the result screen",
		},
	)

	AnalysisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careervision_analysis_requests_total",
			Help: "Analysis calls by outcome (ok or error code)",
		},
		[]string{"outcome"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "careervision_analysis_duration_seconds",
			Help:    "Latency of analysis calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	RecordsAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "careervision_records_appended_total",
			Help: "Total number of storage records committed",
		},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careervision_storage_errors_total",
			Help: "Storage failures by operation",
		},
		[]string{"op"},
	)
)
