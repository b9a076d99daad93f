package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/job-queue/pkg/broker"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"socialgram/internal/mediactl/config"
	"socialgram/internal/mediactl/output"
	"socialgram/internal/mediapath"
	"socialgram/internal/storage"
	"socialgram/internal/worker"
)

var (
	jsonOutput bool
	quietMode  bool
	cfg        *config.Config
	printer    *output.Printer
)

var rootCmd = &cobra.Command{
	Use:   "mediactl",
	Short: "mediactl - operate the media pipeline from the terminal",
	Long: `mediactl is the operations tool for the media pipeline.

Sweep staging directories, stage files for reprocessing, and delete
stored media without going through the HTTP API.

Examples:
  mediactl sweep                         # Clean up orphaned staging files
  mediactl stage --kind gallery --id 7 photo.jpg
  mediactl delete /user_photo/abc.jpg    # Queue a file deletion`,
	Version: "1.0.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		printer = output.New(
			output.WithJSON(jsonOutput),
			output.WithQuiet(quietMode),
		)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON (for scripting)")
	rootCmd.PersistentFlags().BoolVar(&quietMode, "quiet", false, "Suppress non-error output")

	rootCmd.SetVersionTemplate("mediactl version {{.Version}}\n")

	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(configCmd)
}

// localDeps builds worker dependencies for filesystem-only commands.
func localDeps() *worker.Dependencies {
	return &worker.Dependencies{
		Store: storage.NewLocal(),
		Paths: mediapath.NewResolver(cfg.MediaRoot),
	}
}

// connectBroker dials redis and wraps the streams broker. The caller
// owns closing the returned client.
func connectBroker(ctx context.Context) (worker.Broker, *redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil, fmt.Errorf("redis_url not configured, set %s or the config file", config.EnvRedisURL)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	b := broker.NewRedisStreamsBroker(client,
		broker.WithWorkerID(fmt.Sprintf("mediactl-%d", os.Getpid())),
	)
	return worker.NewBroker(b), client, nil
}
