package worker

import (
	"context"
	"fmt"

	"github.com/abdul-hamid-achik/job-queue/pkg/job"

	"socialgram/internal/logger"
	"socialgram/internal/metrics"
	"socialgram/internal/tracing"
)

// Broker enqueues media jobs. The concrete implementation wraps the
// redis streams broker from the job queue library.
type Broker interface {
	Enqueue(ctx context.Context, jobType string, payload interface{}) (string, error)
}

// jobEnqueuer is the part of the queue broker Enqueue needs.
type jobEnqueuer interface {
	Enqueue(ctx context.Context, j *job.Job) error
}

type brokerAdapter struct {
	b jobEnqueuer
}

// NewBroker adapts a job queue broker to the Broker interface.
func NewBroker(b jobEnqueuer) Broker {
	return &brokerAdapter{b: b}
}

func (a *brokerAdapter) Enqueue(ctx context.Context, jobType string, payload interface{}) (string, error) {
	j, err := job.New(jobType, payload)
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	if err := a.b.Enqueue(ctx, j); err != nil {
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return j.ID, nil
}

// traceSettable is implemented by payloads that carry trace context
// across the queue.
type traceSettable interface {
	SetTrace(tc tracing.TraceCarrier)
}

// Enqueue stamps the payload with the current trace context, pushes
// the job onto the queue and records the enqueue metric. Payloads
// must be passed by pointer so the trace carrier can be set.
func Enqueue(ctx context.Context, b Broker, jobType string, payload interface{}) (string, error) {
	ctx, span := tracing.StartJobEnqueueSpan(ctx, jobType)
	defer span.End()

	if s, ok := payload.(traceSettable); ok {
		s.SetTrace(tracing.InjectTraceContext(ctx))
	}

	jobID, err := b.Enqueue(ctx, jobType, payload)
	if err != nil {
		tracing.RecordError(ctx, err)
		return "", err
	}

	metrics.RecordJobEnqueued(jobType)
	logger.FromContext(ctx).Info("job enqueued", "job_type", jobType, "job_id", jobID)
	return jobID, nil
}
