package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"socialgram/internal/logger"
	"socialgram/internal/mediapath"
	"socialgram/internal/producer"
	"socialgram/internal/storage"
	"socialgram/internal/worker"
)

var stageCmd = &cobra.Command{
	Use:   "stage [file]",
	Short: "Stage a local file and queue it for processing",
	Long: `Copy a local image into a media kind's staging directory and
enqueue the matching processing job, exactly as an API upload would.
Useful for reprocessing and backfills.

Examples:
  mediactl stage --kind avatar --id 42 selfie.jpg
  mediactl stage --kind gallery --id 7 beach.png
  mediactl stage --kind post --id 21 chart.jpg
  mediactl stage --kind comment --id 33 meme.gif`,
	Args: cobra.ExactArgs(1),
	RunE: runStage,
}

var (
	stageKind string
	stageID   int64
)

func init() {
	stageCmd.Flags().StringVar(&stageKind, "kind", "", "Media kind: avatar, gallery, post or comment")
	stageCmd.Flags().Int64Var(&stageID, "id", 0, "Owning user, post or comment id")
	_ = stageCmd.MarkFlagRequired("kind")
	_ = stageCmd.MarkFlagRequired("id")
}

// stageTarget maps the CLI kind names onto path kinds and job types.
func stageTarget(kind string, id int64, tempPath string) (mediapath.Kind, string, interface{}, error) {
	switch kind {
	case "avatar":
		p := worker.NewAvatarPayload(id, tempPath)
		return mediapath.KindAvatar, worker.JobTypeProcessAvatar, &p, nil
	case "gallery":
		p := worker.NewGalleryPayload(id, tempPath)
		return mediapath.KindGallery, worker.JobTypeProcessGallery, &p, nil
	case "post":
		p := worker.NewPostImagePayload(id, tempPath)
		return mediapath.KindPostImage, worker.JobTypeProcessPostImage, &p, nil
	case "comment":
		p := worker.NewCommentImagePayload(id, tempPath)
		return mediapath.KindCommentImage, worker.JobTypeProcessCommentImage, &p, nil
	default:
		return "", "", nil, fmt.Errorf("unknown kind %q, expected avatar, gallery, post or comment", kind)
	}
}

func runStage(cmd *cobra.Command, args []string) error {
	ctx := logger.WithLogger(cmd.Context(), logger.Default())

	kind, _, _, err := stageTarget(stageKind, stageID, "")
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer func() { _ = file.Close() }()

	paths := mediapath.NewResolver(cfg.MediaRoot)
	dirs, err := paths.Dirs(kind)
	if err != nil {
		return err
	}

	staged, err := producer.Stage(ctx, storage.NewLocal(), dirs.Temp, args[0], file)
	if err != nil {
		return fmt.Errorf("stage file: %w", err)
	}
	printer.Success("staged %s", staged)

	b, client, err := connectBroker(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	_, jobType, payload, err := stageTarget(stageKind, stageID, staged)
	if err != nil {
		return err
	}

	jobID, err := worker.Enqueue(ctx, b, jobType, payload)
	if err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	printer.Success("queued %s", jobType)
	printer.Detail("job_id", jobID)

	if jsonOutput {
		return printer.JSON(map[string]interface{}{
			"temp_path": staged,
			"job_type":  jobType,
			"job_id":    jobID,
		})
	}
	return nil
}
