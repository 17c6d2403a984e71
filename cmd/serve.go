package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/amonks/streams/db"
	"github.com/amonks/streams/server"
	"github.com/amonks/streams/spotify"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog administration and display API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		spo := spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		return server.New(store, spo, log).Run(ctx, cfg.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
