package metrics

import (
	"time"
)

// PrometheusCollector implements the job queue's MetricsCollector
// interface, bridging worker pool events into Prometheus metrics.
type PrometheusCollector struct{}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{}
}

// JobStarted is called when a job begins processing.
func (c *PrometheusCollector) JobStarted(jobType, queue string) {
	WorkerPoolActiveJobs.Inc()
}

// JobCompleted is called when a job finishes successfully.
func (c *PrometheusCollector) JobCompleted(jobType, queue string, duration time.Duration) {
	WorkerPoolActiveJobs.Dec()
	RecordJobProcessed(jobType, "success", duration.Seconds())
}

// JobFailed is called when a job fails permanently.
func (c *PrometheusCollector) JobFailed(jobType, queue string, duration time.Duration) {
	WorkerPoolActiveJobs.Dec()
	RecordJobProcessed(jobType, "failed", duration.Seconds())
}

// JobRetrying is called when a job is being retried.
func (c *PrometheusCollector) JobRetrying(jobType, queue string, attempt int) {
	JobsProcessedTotal.WithLabelValues(jobType, "retrying").Inc()
}
