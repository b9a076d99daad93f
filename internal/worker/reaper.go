package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/job-queue/pkg/job"

	"socialgram/internal/logger"
	"socialgram/internal/mediapath"
	"socialgram/internal/metrics"
)

// SweepStats summarizes a temp reaper run.
type SweepStats struct {
	DeletedCount int      `json:"deleted_count"`
	DeletedPaths []string `json:"deleted_paths"`
	FailedCount  int      `json:"failed_count"`
}

// RunTempSweep walks the staging directories under the media root and
// deletes the files inside them. Only directories whose name ends in
// the temp suffix are touched, and only their direct children are
// removed. Per-file failures are logged and counted but do not abort
// the sweep.
func (d *Dependencies) RunTempSweep(ctx context.Context) (*SweepStats, error) {
	log := logger.FromContext(ctx)
	root := d.Paths.Root()
	stats := &SweepStats{DeletedPaths: []string{}}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("media root does not exist, nothing to sweep", "root", root)
			return stats, nil
		}
		return nil, fmt.Errorf("read media root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), mediapath.TempSuffix) {
			continue
		}

		dir := filepath.Join(root, entry.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			log.Error("failed to read temp directory", "dir", dir, "error", err)
			stats.FailedCount++
			continue
		}

		for _, f := range files {
			if f.IsDir() {
				continue
			}
			path := filepath.Join(dir, f.Name())
			if err := d.Store.Remove(ctx, path); err != nil {
				log.Error("failed to delete temp file", "path", path, "error", err)
				stats.FailedCount++
				continue
			}
			stats.DeletedCount++
			stats.DeletedPaths = append(stats.DeletedPaths, path)
		}
	}

	metrics.RecordTempSweep(stats.DeletedCount, stats.FailedCount)
	log.Info("temp sweep finished",
		"deleted", stats.DeletedCount,
		"failed", stats.FailedCount)
	return stats, nil
}

// TempSweepHandler returns the job handler for queue-triggered sweeps.
func TempSweepHandler(deps *Dependencies) func(ctx context.Context, j *job.Job) error {
	return func(ctx context.Context, j *job.Job) error {
		_, err := deps.RunTempSweep(ctx)
		return err
	}
}
