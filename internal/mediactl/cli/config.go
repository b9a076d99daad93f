package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	mcconfig "socialgram/internal/mediactl/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update the mediactl configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printer.JSON(cfg)
		}
		printer.Detail("media_root", cfg.MediaRoot)
		printer.Detail("redis_url", cfg.RedisURL)
		path, err := mcconfig.Path()
		if err == nil {
			printer.Detail("config_file", path)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it.

Supported keys: media_root, redis_url`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "media_root":
			cfg.MediaRoot = args[1]
		case "redis_url":
			cfg.RedisURL = args[1]
		default:
			return fmt.Errorf("unknown key %q", args[0])
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		printer.Success("%s set", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
