package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/job-queue/pkg/job"
	"github.com/abdul-hamid-achik/job-queue/pkg/middleware"

	"socialgram/internal/logger"
	"socialgram/internal/metrics"
	"socialgram/internal/storage"
	"socialgram/internal/tracing"
)

// Deletion statuses reported by DeleteMedia.
const (
	DeleteStatusDeleted  = "deleted"
	DeleteStatusNotFound = "not_found"
)

// DeleteResult reports the outcome of a media deletion.
type DeleteResult struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// DeleteMedia removes a single stored file. A file that is already
// gone counts as not_found rather than an error, which keeps retried
// deliveries of the same job harmless.
func (d *Dependencies) DeleteMedia(ctx context.Context, p DeleteMediaPayload) (*DeleteResult, error) {
	abs := d.Paths.ToAbsolute(p.Path)

	if err := d.Store.Remove(ctx, abs); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.RecordFileDeletion(DeleteStatusNotFound)
			return &DeleteResult{Status: DeleteStatusNotFound, Path: abs}, nil
		}
		metrics.RecordFileDeletion("error")
		return nil, fmt.Errorf("delete %s: %w", abs, err)
	}

	metrics.RecordFileDeletion(DeleteStatusDeleted)
	return &DeleteResult{Status: DeleteStatusDeleted, Path: abs}, nil
}

// DeleteMediaHandler returns the job handler for media deletion jobs.
func DeleteMediaHandler(deps *Dependencies) func(ctx context.Context, j *job.Job) error {
	return func(ctx context.Context, j *job.Job) error {
		var p DeleteMediaPayload
		if err := j.UnmarshalPayload(&p); err != nil {
			return middleware.Permanent(fmt.Errorf("unmarshal payload: %w", err))
		}
		ctx = tracing.ExtractTraceContext(ctx, p.Trace)
		ctx, span := tracing.StartJobSpan(ctx, JobTypeDeleteMedia, j.ID)
		defer span.End()

		log := logger.FromContext(ctx)
		result, err := deps.DeleteMedia(ctx, p)
		if err != nil {
			tracing.RecordError(ctx, err)
			log.Error("media deletion failed", "job_id", j.ID, "path", p.Path, "error", err)
			return err
		}

		log.Info("media deletion finished", "job_id", j.ID, "path", result.Path, "status", result.Status)
		return nil
	}
}
