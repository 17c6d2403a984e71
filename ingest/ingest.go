// Package ingest turns scraped album snapshots into store rows: album and
// track metadata, artist junctions, and settled daily play counts.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/amonks/streams/data"
	"github.com/amonks/streams/db"
	"github.com/amonks/streams/player"
	"github.com/amonks/streams/uri"
	"go.uber.org/zap"
)

// Source fetches album snapshots from the player endpoint.
type Source interface {
	AlbumUnion(ctx context.Context, albumID string) (*player.AlbumUnion, error)
}

// New creates an Ingestor writing to the given store.
func New(store *db.DB, source Source, log *zap.Logger) *Ingestor {
	return &Ingestor{
		db:     store,
		source: source,
		log:    log,
	}
}

// Ingestor performs idempotent, relationship-aware upserts of album detail.
type Ingestor struct {
	db     *db.DB
	source Source
	log    *zap.Logger
}

// IngestAlbum fetches one album's snapshot and upserts the album row, its
// tracks, the artist junctions, and each track's daily play count. tracked is
// the set of currently-tracked artist ids: tracks credited to no tracked
// artist are skipped entirely, and junction links to untracked co-artists are
// dropped.
//
// The album row is committed before any track work so that a track never
// references an album readers cannot see. A failure on one track is logged
// and skipped; its missing stream row resurfaces in the completion sweep.
func (ing *Ingestor) IngestAlbum(ctx context.Context, albumID string, tracked map[string]struct{}) error {
	union, err := ing.source.AlbumUnion(ctx, albumID)
	if err != nil {
		return fmt.Errorf("error fetching album '%s': %w", albumID, err)
	}

	id := uri.ID(union.URI)
	releaseDate, err := time.Parse(time.RFC3339, union.ReleaseISO())
	if err != nil {
		return fmt.Errorf("album '%s': bad release date '%s': %w", id, union.ReleaseISO(), err)
	}

	if err := ing.db.UpsertAlbum(&data.Album{
		ID:          id,
		Name:        union.Name,
		ReleaseDate: releaseDate,
		AlbumType:   union.AlbumType,
		Images:      union.Images(),
		Colors:      union.Colors(),
		Display:     true,
		SharingID:   union.SharingInfo.ShareID,
		Updated:     sql.NullTime{Time: data.Day(0), Valid: true},
	}); err != nil {
		return err
	}

	albumArtists := map[string]struct{}{}
	for _, track := range union.TrackDetails() {
		linked := trackedArtists(&track, tracked)
		if len(linked) == 0 {
			continue
		}

		trackID := uri.ID(track.URI)
		if err := ing.db.UpsertTrack(&data.Track{
			ID:         trackID,
			AlbumID:    id,
			Name:       track.Name,
			DurationMS: track.Duration.TotalMilliseconds,
		}); err != nil {
			ing.log.Error("error upserting track, skipping",
				zap.String("track", trackID), zap.Error(err))
			continue
		}

		links := make([]data.ArtistTrack, len(linked))
		for i, artistID := range linked {
			links[i] = data.ArtistTrack{ArtistID: artistID, TrackID: trackID}
			albumArtists[artistID] = struct{}{}
		}
		if err := ing.db.InsertArtistTracks(links); err != nil {
			ing.log.Error("error linking track artists",
				zap.String("track", trackID), zap.Error(err))
		}

		if err := ing.recordTrack(&track); err != nil {
			ing.log.Error("error recording track streams",
				zap.String("track", trackID), zap.Error(err))
		}
	}

	albumLinks := make([]data.ArtistAlbum, 0, len(albumArtists))
	for artistID := range albumArtists {
		albumLinks = append(albumLinks, data.ArtistAlbum{ArtistID: artistID, AlbumID: id})
	}
	sort.Slice(albumLinks, func(i, j int) bool {
		return albumLinks[i].ArtistID < albumLinks[j].ArtistID
	})
	return ing.db.InsertArtistAlbums(albumLinks)
}

// RecordStreams re-fetches the album and re-runs only the play-count half of
// ingestion, for the completion sweep. Metadata is not rewritten.
func (ing *Ingestor) RecordStreams(ctx context.Context, albumID string) error {
	union, err := ing.source.AlbumUnion(ctx, albumID)
	if err != nil {
		return fmt.Errorf("error fetching album '%s': %w", albumID, err)
	}

	for _, track := range union.TrackDetails() {
		if err := ing.recordTrack(&track); err != nil {
			ing.log.Error("error recording track streams",
				zap.String("track", uri.ID(track.URI)), zap.Error(err))
		}
	}
	return nil
}

// recordTrack writes a daily_streams row for the current sync day if the
// readiness check passes. Unknown tracks (filtered during ingestion) and
// not-yet-settled counts are skipped without error.
func (ing *Ingestor) recordTrack(track *player.TrackDetail) error {
	trackID := uri.ID(track.URI)
	observed := int64(track.Playcount)

	ready, known, err := ing.db.CompareStreams(trackID, observed)
	if err != nil {
		return err
	}
	if !known || !ready {
		return nil
	}

	return ing.db.UpsertDailyStream(&data.DailyStream{
		Date:    data.Day(1),
		TrackID: trackID,
		Time:    time.Now(),
		Streams: observed,
	})
}

func trackedArtists(track *player.TrackDetail, tracked map[string]struct{}) []string {
	var linked []string
	seen := map[string]struct{}{}
	for _, artistURI := range track.ArtistURIs() {
		artistID := uri.ID(artistURI)
		if _, ok := tracked[artistID]; !ok {
			continue
		}
		if _, dup := seen[artistID]; dup {
			continue
		}
		seen[artistID] = struct{}{}
		linked = append(linked, artistID)
	}
	return linked
}
