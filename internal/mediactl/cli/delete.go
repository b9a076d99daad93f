package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"socialgram/internal/logger"
	"socialgram/internal/worker"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [path...]",
	Aliases: []string{"rm"},
	Short:   "Delete stored media files",
	Long: `Delete stored media files by their url path or absolute path.

By default deletions go through the job queue so they run with the same
retry semantics as API-driven deletes. Use --direct to remove the files
immediately on this machine instead.

Examples:
  mediactl delete /user_photo/abc.jpg
  mediactl delete /post_images/x.jpg /post_images/thumbnails/x.jpg
  mediactl delete --direct /user_photo/abc.jpg
  mediactl delete --force /comment_images/y.jpg`,
	RunE: runDelete,
}

var (
	deleteForce  bool
	deleteDirect bool
)

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
	deleteCmd.Flags().BoolVar(&deleteDirect, "direct", false, "Delete from the local filesystem instead of enqueueing")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	if !deleteForce && !jsonOutput {
		printer.Printf("Are you sure you want to delete %d file(s)? [y/N] ", len(args))
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			printer.Info("Cancelled")
			return nil
		}
	}

	ctx := logger.WithLogger(cmd.Context(), logger.Default())

	if deleteDirect {
		deps := localDeps()
		var results []map[string]interface{}
		for _, path := range args {
			result, err := deps.DeleteMedia(ctx, worker.NewDeleteMediaPayload(path))
			if err != nil {
				printer.Error("failed to delete %s: %v", path, err)
				results = append(results, map[string]interface{}{"path": path, "error": err.Error()})
				continue
			}
			printer.Success("%s %s", result.Status, result.Path)
			results = append(results, map[string]interface{}{"path": result.Path, "status": result.Status})
		}
		if jsonOutput {
			return printer.JSON(map[string]interface{}{"results": results})
		}
		return nil
	}

	b, client, err := connectBroker(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var results []map[string]interface{}
	for _, path := range args {
		p := worker.NewDeleteMediaPayload(path)
		jobID, err := worker.Enqueue(ctx, b, worker.JobTypeDeleteMedia, &p)
		if err != nil {
			printer.Error("failed to enqueue deletion of %s: %v", path, err)
			results = append(results, map[string]interface{}{"path": path, "error": err.Error()})
			continue
		}
		printer.Success("queued deletion of %s", path)
		printer.Detail("job_id", jobID)
		results = append(results, map[string]interface{}{"path": path, "job_id": jobID})
	}

	if jsonOutput {
		return printer.JSON(map[string]interface{}{"results": results})
	}
	return nil
}
