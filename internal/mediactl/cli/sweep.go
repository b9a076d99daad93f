package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"socialgram/internal/logger"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete orphaned files from the staging directories",
	Long: `Sweep every *_tmp directory under the media root and delete the
staged files inside. Files belonging to jobs that failed permanently or
were never picked up accumulate there; a sweep reclaims the space.

Examples:
  mediactl sweep            # Sweep the configured media root
  mediactl sweep --json     # Machine-readable result`,
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
	defer cancel()
	ctx = logger.WithLogger(ctx, logger.Default())

	printer.Info("sweeping %s", cfg.MediaRoot)

	stats, err := localDeps().RunTempSweep(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printer.JSON(stats)
	}

	printer.Success("deleted %d staged file(s), %d failure(s)", stats.DeletedCount, stats.FailedCount)
	for _, p := range stats.DeletedPaths {
		printer.Detail("deleted", p)
	}
	return nil
}
