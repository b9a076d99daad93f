package metrics

import (
	"testing"
	"time"

	"github.com/abdul-hamid-achik/job-queue/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// The collector must satisfy the pool middleware's interface or the
// worker binary stops building.
var _ middleware.MetricsCollector = (*PrometheusCollector)(nil)

func TestPrometheusCollectorJobCompleted(t *testing.T) {
	c := NewPrometheusCollector()

	success := JobsProcessedTotal.WithLabelValues("process_avatar", "success")
	before := testutil.ToFloat64(success)

	c.JobStarted("process_avatar", "default")
	c.JobCompleted("process_avatar", "default", 250*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(success))
	assert.Equal(t, float64(0), testutil.ToFloat64(WorkerPoolActiveJobs))
}

func TestPrometheusCollectorJobFailed(t *testing.T) {
	c := NewPrometheusCollector()

	failed := JobsProcessedTotal.WithLabelValues("process_gallery", "failed")
	before := testutil.ToFloat64(failed)

	c.JobStarted("process_gallery", "default")
	c.JobFailed("process_gallery", "default", time.Second)

	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

func TestPrometheusCollectorJobRetrying(t *testing.T) {
	c := NewPrometheusCollector()

	retrying := JobsProcessedTotal.WithLabelValues("delete_media", "retrying")
	before := testutil.ToFloat64(retrying)

	c.JobRetrying("delete_media", "default", 2)

	assert.Equal(t, before+1, testutil.ToFloat64(retrying))
}
