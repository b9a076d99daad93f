package metrics

import (
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var idPathRegex = regexp.MustCompile(`/\d+`)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Total number of media uploads staged",
		},
		[]string{"kind", "status"},
	)

	MediaUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_upload_bytes",
			Help:    "Size of staged uploads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
	)

	FileDeletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_deletions_total",
			Help: "Total number of file deletions",
		},
		[]string{"status"},
	)

	JobsEnqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_enqueued_total",
			Help: "Total number of jobs enqueued",
		},
		[]string{"type"},
	)

	JobsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_processed_total",
			Help: "Total number of jobs processed",
		},
		[]string{"type", "status"},
	)

	JobsProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobs_processing_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"type", "stage"},
	)

	WorkerPoolActiveJobs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_pool_active_jobs",
			Help: "Number of jobs currently being processed by workers",
		},
	)

	WorkerPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_pool_size",
			Help: "Size of the worker pool",
		},
	)

	TempSweepRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "temp_sweep_runs_total",
			Help: "Total number of temp reaper sweeps",
		},
	)

	TempSweepDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "temp_sweep_deleted_files_total",
			Help: "Total number of staged files deleted by the temp reaper",
		},
	)

	TempSweepErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "temp_sweep_errors_total",
			Help: "Total number of per-file failures during temp sweeps",
		},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application information",
		},
		[]string{"version", "environment", "service"},
	)

	AppUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_up",
			Help: "Application is up and running",
		},
	)
)

// NormalizePath collapses numeric path segments so ids do not explode
// metric cardinality.
func NormalizePath(path string) string {
	return idPathRegex.ReplaceAllString(path, "/:id")
}

func RecordMediaUpload(kind, status string, sizeBytes int64) {
	MediaUploadsTotal.WithLabelValues(kind, status).Inc()
	if status == "success" {
		MediaUploadBytes.Observe(float64(sizeBytes))
	}
}

func RecordFileDeletion(status string) {
	FileDeletionsTotal.WithLabelValues(status).Inc()
}

func RecordJobEnqueued(jobType string) {
	JobsEnqueuedTotal.WithLabelValues(jobType).Inc()
}

func RecordJobProcessed(jobType, status string, durationSeconds float64) {
	JobsProcessedTotal.WithLabelValues(jobType, status).Inc()
	JobsProcessingDuration.WithLabelValues(jobType, "total").Observe(durationSeconds)
}

func RecordJobStage(jobType, stage string, durationSeconds float64) {
	JobsProcessingDuration.WithLabelValues(jobType, stage).Observe(durationSeconds)
}

func RecordTempSweep(deleted, failed int) {
	TempSweepRunsTotal.Inc()
	TempSweepDeletedTotal.Add(float64(deleted))
	TempSweepErrorsTotal.Add(float64(failed))
}

func SetAppInfo(version, environment, service string) {
	AppInfo.WithLabelValues(version, environment, service).Set(1)
	AppUp.Set(1)
}

func SetWorkerPoolSize(size int) {
	WorkerPoolSize.Set(float64(size))
}
