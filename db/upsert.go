package db

import (
	"fmt"

	"github.com/amonks/streams/data"
	"gorm.io/gorm/clause"
)

// UpsertArtist inserts the artist, or refreshes its mutable columns if a row
// with the same id already exists.
func (db *DB) UpsertArtist(artist *data.Artist) error {
	if artist.ID == "" {
		return fmt.Errorf("no artist id")
	}
	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "images"}),
		}).
		Create(artist).
		Error; err != nil {
		return fmt.Errorf("error upserting artist '%s': %w", artist.ID, err)
	}
	return nil
}

// InsertFollowerCount records an artist's follower count for a sync day,
// doing nothing if a row for that (artist, day) already exists.
func (db *DB) InsertFollowerCount(fi *data.FollowerInstance) error {
	if fi.ArtistID == "" {
		return fmt.Errorf("no artist id")
	}
	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "artist_id"}},
			DoNothing: true,
		}).
		Create(fi).
		Error; err != nil {
		return fmt.Errorf("error inserting follower count for artist '%s': %w", fi.ArtistID, err)
	}
	return nil
}

// UpsertAlbum inserts the album, or refreshes every mutable column on
// conflict, including the updated sync day.
func (db *DB) UpsertAlbum(album *data.Album) error {
	if album.ID == "" {
		return fmt.Errorf("no album id")
	}
	if err := db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "release_date", "album_type", "images",
				"colors", "display", "sharing_id", "updated",
			}),
		}).
		Create(album).
		Error; err != nil {
		return fmt.Errorf("error upserting album '%s': %w", album.ID, err)
	}
	return nil
}

// UpsertTrack inserts the track, or refreshes its mutable columns on
// conflict. The owning album row must already exist.
func (db *DB) UpsertTrack(track *data.Track) error {
	if track.ID == "" {
		return fmt.Errorf("no track id")
	}
	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "duration_ms", "album_id"}),
		}).
		Create(track).
		Error; err != nil {
		return fmt.Errorf("error upserting track '%s': %w", track.ID, err)
	}
	return nil
}

// UpsertDailyStream records a play-count observation, overwriting the row for
// the same (track, day) key if one exists.
func (db *DB) UpsertDailyStream(ds *data.DailyStream) error {
	if ds.TrackID == "" {
		return fmt.Errorf("no track id")
	}
	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "track_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"streams", "time"}),
		}).
		Create(ds).
		Error; err != nil {
		return fmt.Errorf("error upserting daily streams for track '%s': %w", ds.TrackID, err)
	}
	return nil
}

// InsertArtistAlbums batch-inserts artist/album junction rows, skipping pairs
// that already exist.
func (db *DB) InsertArtistAlbums(links []data.ArtistAlbum) error {
	if len(links) == 0 {
		return nil
	}
	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).
		Error; err != nil {
		return fmt.Errorf("error inserting %d artist album links: %w", len(links), err)
	}
	return nil
}

// InsertArtistTracks batch-inserts artist/track junction rows, skipping pairs
// that already exist.
func (db *DB) InsertArtistTracks(links []data.ArtistTrack) error {
	if len(links) == 0 {
		return nil
	}
	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).
		Error; err != nil {
		return fmt.Errorf("error inserting %d artist track links: %w", len(links), err)
	}
	return nil
}
