// Package update drives one daily sync pass: status gate, artist refresh,
// catalog discovery, album ingestion, and the stream completion sweep.
package update

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/streams/data"
	"github.com/amonks/streams/db"
	"github.com/amonks/streams/player"
	"github.com/amonks/streams/spotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MetadataSource batch-fetches artist detail from the metadata API.
type MetadataSource interface {
	FetchArtists(ctx context.Context, ids []string) ([]spotify.ArtistDetail, error)
}

// CanarySource fetches the live play count of the canary track.
type CanarySource interface {
	TrackUnion(ctx context.Context, trackID string) (*player.TrackUnion, error)
}

// Discoverer resolves tracked artists to the full album id universe.
type Discoverer interface {
	Discover(ctx context.Context, artistIDs []string) (map[string]struct{}, error)
}

// Ingestor ingests album detail and records play counts.
type Ingestor interface {
	IngestAlbum(ctx context.Context, albumID string, tracked map[string]struct{}) error
	RecordStreams(ctx context.Context, albumID string) error
}

// Options configures a daily update pass. Zero values fall back to the
// defaults below.
type Options struct {
	// CanaryTrackID is polled before anything else; the pass starts only
	// once its play count shows a new settled daily value.
	CanaryTrackID string

	PollInterval     time.Duration // wait between polls and sweep rounds
	MaxPollAttempts  int           // status gate polls before giving up
	MaxSyncAttempts  int           // album ingestion passes
	MaxSweepAttempts int           // stream completion rounds
	Concurrency      int           // in-flight album fetches
}

func (opts *Options) fillDefaults() {
	if opts.PollInterval == 0 {
		opts.PollInterval = 15 * time.Minute
	}
	if opts.MaxPollAttempts == 0 {
		opts.MaxPollAttempts = 96
	}
	if opts.MaxSyncAttempts == 0 {
		opts.MaxSyncAttempts = 13
	}
	if opts.MaxSweepAttempts == 0 {
		opts.MaxSweepAttempts = 16
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = 50
	}
}

// New creates an Updater. The store and all collaborators are threaded in
// explicitly; Run holds no other state.
func New(store *db.DB, metadata MetadataSource, canary CanarySource, discoverer Discoverer, ingestor Ingestor, opts Options, log *zap.Logger) *Updater {
	opts.fillDefaults()
	return &Updater{
		db:         store,
		metadata:   metadata,
		canary:     canary,
		discoverer: discoverer,
		ingestor:   ingestor,
		opts:       opts,
		log:        log,
	}
}

// Updater runs daily update passes.
type Updater struct {
	db         *db.DB
	metadata   MetadataSource
	canary     CanarySource
	discoverer Discoverer
	ingestor   Ingestor
	opts       Options
	log        *zap.Logger
}

// Run executes one daily update pass and returns its wall-clock duration.
// Individual album and track failures are retried within the pass and logged;
// only the status gate and the artist refresh are fatal. Callers reschedule
// the whole pass to converge on anything still missing.
func (u *Updater) Run(ctx context.Context) (time.Duration, error) {
	start := time.Now()

	if err := u.statusGate(ctx); err != nil {
		return 0, fmt.Errorf("status check failed: %w", err)
	}
	u.log.Info("passed status check")

	tracked, err := u.refreshArtists(ctx)
	if err != nil {
		return 0, fmt.Errorf("error updating artists: %w", err)
	}
	u.log.Info("artists updated", zap.Int("count", len(tracked)))

	if err := u.syncAlbums(ctx, tracked); err != nil {
		return 0, fmt.Errorf("error updating albums: %w", err)
	}
	u.log.Info("albums updated")

	if err := u.completeStreams(ctx); err != nil {
		return 0, fmt.Errorf("error updating remaining tracks: %w", err)
	}

	return time.Since(start), nil
}

// statusGate blocks until the canary track's play count is ready to record,
// which signals that the upstream source has rolled over to a new day. An
// unknown canary (never ingested) passes the gate.
func (u *Updater) statusGate(ctx context.Context) error {
	for attempt := 0; attempt < u.opts.MaxPollAttempts; attempt++ {
		union, err := u.canary.TrackUnion(ctx, u.opts.CanaryTrackID)
		if err != nil {
			return err
		}

		ready, known, err := u.db.CompareStreams(u.opts.CanaryTrackID, int64(union.Playcount))
		if err != nil {
			return err
		}
		if !known || ready {
			return nil
		}

		u.log.Info("not ready for update, waiting",
			zap.String("track", union.Name),
			zap.Int64("playcount", int64(union.Playcount)),
			zap.Duration("wait", u.opts.PollInterval))
		if err := sleep(ctx, u.opts.PollInterval); err != nil {
			return err
		}
	}
	return fmt.Errorf("canary track '%s' not ready after %d polls",
		u.opts.CanaryTrackID, u.opts.MaxPollAttempts)
}

// refreshArtists re-fetches detail for every tracked artist and records the
// day's follower counts. Artist identity is foundational, so any failure here
// aborts the pass.
func (u *Updater) refreshArtists(ctx context.Context) ([]string, error) {
	ids, err := u.db.ArtistIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no tracked artists")
	}
	if err := RefreshArtists(ctx, u.db, u.metadata, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// RefreshArtists fetches current detail for the given artists and upserts
// their rows along with the day's follower counts. Adding a new artist to the
// catalog is the single-id case.
func RefreshArtists(ctx context.Context, store *db.DB, metadata MetadataSource, ids []string) error {
	for start := 0; start < len(ids); start += 50 {
		end := min(start+50, len(ids))
		artists, err := metadata.FetchArtists(ctx, ids[start:end])
		if err != nil {
			return err
		}
		if len(artists) == 0 {
			return fmt.Errorf("no artist detail returned for %d ids", end-start)
		}

		for _, artist := range artists {
			if err := store.UpsertArtist(&data.Artist{
				ID:     artist.ID,
				Name:   artist.Name,
				Images: artist.Images,
			}); err != nil {
				return err
			}
			if err := store.InsertFollowerCount(&data.FollowerInstance{
				Date:     data.Day(1),
				ArtistID: artist.ID,
				Count:    artist.Followers,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// syncAlbums discovers the album universe for the tracked artists and ingests
// every album that has not yet been updated for the current sync day,
// re-querying the store between passes so failures resurface naturally.
func (u *Updater) syncAlbums(ctx context.Context, artistIDs []string) error {
	albums, err := u.discoverer.Discover(ctx, artistIDs)
	if err != nil {
		return err
	}

	tracked := make(map[string]struct{}, len(artistIDs))
	for _, id := range artistIDs {
		tracked[id] = struct{}{}
	}

	for attempt := 0; attempt < u.opts.MaxSyncAttempts; attempt++ {
		remaining, err := u.db.AlbumsToUpdate(albums, data.Day(0))
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return nil
		}
		u.log.Info("ingesting albums",
			zap.Int("remaining", len(remaining)), zap.Int("attempt", attempt))

		var g errgroup.Group
		g.SetLimit(u.opts.Concurrency)
		for id := range remaining {
			id := id
			g.Go(func() error {
				if err := u.ingestor.IngestAlbum(ctx, id, tracked); err != nil {
					u.log.Error("album ingestion failed",
						zap.String("album", id), zap.Error(err))
				}
				return ctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	remaining, err := u.db.AlbumsToUpdate(albums, data.Day(0))
	if err != nil {
		return err
	}
	if len(remaining) > 0 {
		u.log.Warn("albums still pending after all attempts",
			zap.Int("count", len(remaining)))
	}
	return nil
}

// completeStreams finds tracks still missing the day's stream row, groups
// them by album, and re-runs the stream half of ingestion until none remain
// or the attempt ceiling is hit. Whatever is left is picked up by the next
// scheduled pass.
func (u *Updater) completeStreams(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		pending, err := u.db.AlbumsMissingStreams(data.Day(1))
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}
		if attempt >= u.opts.MaxSweepAttempts {
			u.log.Warn("tracks still missing streams after all sweeps",
				zap.Int("albums", len(pending)))
			return nil
		}
		if attempt > 0 {
			u.log.Info("tracks not ready to update, waiting",
				zap.Int("albums", len(pending)),
				zap.Duration("wait", u.opts.PollInterval))
			if err := sleep(ctx, u.opts.PollInterval); err != nil {
				return err
			}
		}

		var g errgroup.Group
		g.SetLimit(u.opts.Concurrency)
		for id := range pending {
			id := id
			g.Go(func() error {
				if err := u.ingestor.RecordStreams(ctx, id); err != nil {
					u.log.Error("stream update failed",
						zap.String("album", id), zap.Error(err))
				}
				return ctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
