// Package cmd wires the CLI.
package cmd

import (
	"os"

	"github.com/amonks/streams/config"
	"github.com/amonks/streams/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "streams",
	Short:        "streams records daily Spotify play counts for a tracked catalog of artists.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Init(cfg.LogLevel, cfg.LogPath)
		log = logger.L()
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
