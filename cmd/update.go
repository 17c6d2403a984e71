package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/amonks/streams/db"
	"github.com/amonks/streams/fetcher"
	"github.com/amonks/streams/ingest"
	"github.com/amonks/streams/player"
	"github.com/amonks/streams/spotify"
	"github.com/amonks/streams/update"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run one daily update pass over the tracked catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		spo := spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		play := player.New(cfg.AlbumEndpoint, cfg.TrackEndpoint, cfg.ArtistEndpoint)

		updater := update.New(
			store,
			spo,
			play,
			fetcher.New(spo, play, cfg.DiscoveryAttempts, log),
			ingest.New(store, play, log),
			update.Options{
				CanaryTrackID:    cfg.StatusCheckTrackID,
				PollInterval:     cfg.PollInterval,
				MaxPollAttempts:  cfg.PollAttempts,
				MaxSyncAttempts:  cfg.SyncAttempts,
				MaxSweepAttempts: cfg.SweepAttempts,
				Concurrency:      cfg.Concurrency,
			},
			log,
		)

		duration, err := updater.Run(ctx)
		if err != nil {
			return err
		}
		log.Info("update complete", zap.Duration("duration", duration))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
