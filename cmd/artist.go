package cmd

import (
	"fmt"

	"github.com/amonks/streams/db"
	"github.com/amonks/streams/spotify"
	"github.com/amonks/streams/update"
	"github.com/spf13/cobra"
)

var artistCmd = &cobra.Command{
	Use:   "artist",
	Short: "Manage the tracked artist catalog",
}

var artistAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Start tracking an artist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		spo := spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		if err := update.RefreshArtists(cmd.Context(), store, spo, args); err != nil {
			return err
		}
		fmt.Printf("artist %s added\n", args[0])
		return nil
	},
}

var artistRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Stop tracking an artist and delete its solely-owned albums",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := store.DeleteArtist(args[0])
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("artist '%s' is not tracked", args[0])
		}
		fmt.Printf("artist %s deleted\n", args[0])
		return nil
	},
}

func init() {
	artistCmd.AddCommand(artistAddCmd, artistRemoveCmd)
	rootCmd.AddCommand(artistCmd)
}
