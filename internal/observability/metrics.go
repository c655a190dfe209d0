package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	fetchBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "duckpipe_fetch_bytes_total",
			Help: "Total bytes downloaded from the source dataset.",
		},
	)
	fetchDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "duckpipe_fetch_duration_seconds",
			Help:    "Source dataset download latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	queryDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckpipe_query_duration_seconds",
			Help:    "Report query execution latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)
	exportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckpipe_export_rows_total",
			Help: "Total rows written to report CSV files.",
		},
		[]string{"report"},
	)
	pipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckpipe_pipeline_runs_total",
			Help: "Total pipeline runs by outcome.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		fetchBytesTotal,
		fetchDurationSeconds,
		queryDurationSeconds,
		exportRowsTotal,
		pipelineRunsTotal,
	)
}

func ObserveFetch(bytes int64, elapsed time.Duration) {
	if bytes > 0 {
		fetchBytesTotal.Add(float64(bytes))
	}
	fetchDurationSeconds.Observe(elapsed.Seconds())
}

func ObserveQuery(report string, elapsed time.Duration) {
	queryDurationSeconds.WithLabelValues(report).Observe(elapsed.Seconds())
}

func ObserveExport(report string, rows int) {
	if rows < 0 {
		rows = 0
	}
	exportRowsTotal.WithLabelValues(report).Add(float64(rows))
}

func ObserveRun(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	pipelineRunsTotal.WithLabelValues(status).Inc()
}
