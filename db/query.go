package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/amonks/streams/data"
	"gorm.io/gorm"
)

// GetArtist returns the artist with the given id, or nil if it isn't tracked.
func (db *DB) GetArtist(id string) (*data.Artist, error) {
	var artist data.Artist
	if err := db.First(&artist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting artist '%s': %w", id, err)
	}
	return &artist, nil
}

// GetAlbum returns the album with the given id, or nil if it is unknown.
func (db *DB) GetAlbum(id string) (*data.Album, error) {
	var album data.Album
	if err := db.First(&album, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting album '%s': %w", id, err)
	}
	return &album, nil
}

// GetTrack returns the track with the given id, or nil if it is unknown.
func (db *DB) GetTrack(id string) (*data.Track, error) {
	var track data.Track
	if err := db.First(&track, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting track '%s': %w", id, err)
	}
	return &track, nil
}

// Artists returns every tracked artist.
func (db *DB) Artists() ([]data.Artist, error) {
	var artists []data.Artist
	if err := db.Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("error listing artists: %w", err)
	}
	return artists, nil
}

// ArtistIDs returns the ids of every tracked artist.
func (db *DB) ArtistIDs() ([]string, error) {
	var ids []string
	if err := db.
		Table("artists").
		Pluck("id", &ids).
		Error; err != nil {
		return nil, fmt.Errorf("error listing artist ids: %w", err)
	}
	return ids, nil
}

// AlbumsToUpdate returns the subset of the given album ids that have not yet
// been ingested on the given sync day. Ingestion failures naturally resurface
// here on the next pass because failure leaves the updated column behind.
func (db *DB) AlbumsToUpdate(albumIDs map[string]struct{}, day time.Time) (map[string]struct{}, error) {
	var completed []string
	if err := db.
		Table("albums").
		Where("updated = ?", day).
		Pluck("id", &completed).
		Error; err != nil {
		return nil, fmt.Errorf("error listing updated albums: %w", err)
	}

	remaining := make(map[string]struct{}, len(albumIDs))
	for id := range albumIDs {
		remaining[id] = struct{}{}
	}
	for _, id := range completed {
		delete(remaining, id)
	}
	return remaining, nil
}

// AlbumsMissingStreams returns the album ids of every track that has no
// daily_streams row for the given sync day, grouped into a set for refetching.
func (db *DB) AlbumsMissingStreams(day time.Time) (map[string]struct{}, error) {
	var albumIDs []string
	if err := db.
		Table("tracks").
		Distinct("album_id").
		Where("id not in (?)", db.
			Table("daily_streams").
			Select("track_id").
			Where("date = ?", day)).
		Pluck("album_id", &albumIDs).
		Error; err != nil {
		return nil, fmt.Errorf("error listing albums with missing streams: %w", err)
	}

	set := make(map[string]struct{}, len(albumIDs))
	for _, id := range albumIDs {
		set[id] = struct{}{}
	}
	return set, nil
}

// RecentStreams returns up to limit daily_streams rows for the track, most
// recent day first.
func (db *DB) RecentStreams(trackID string, limit int) ([]data.DailyStream, error) {
	var streams []data.DailyStream
	if err := db.
		Where("track_id = ?", trackID).
		Order("date desc").
		Limit(limit).
		Find(&streams).
		Error; err != nil {
		return nil, fmt.Errorf("error getting streams for track '%s': %w", trackID, err)
	}
	return streams, nil
}

// AlbumTracks returns the tracks belonging to the album.
func (db *DB) AlbumTracks(albumID string) ([]data.Track, error) {
	var tracks []data.Track
	if err := db.
		Where("album_id = ?", albumID).
		Find(&tracks).
		Error; err != nil {
		return nil, fmt.Errorf("error getting tracks for album '%s': %w", albumID, err)
	}
	return tracks, nil
}

// ArtistAlbums returns the albums linked to the artist.
func (db *DB) ArtistAlbums(artistID string) ([]data.Album, error) {
	var albums []data.Album
	if err := db.
		Where("id in (?)", db.
			Table("artist_albums").
			Select("album_id").
			Where("artist_id = ?", artistID)).
		Find(&albums).
		Error; err != nil {
		return nil, fmt.Errorf("error getting albums for artist '%s': %w", artistID, err)
	}
	return albums, nil
}

// DeleteArtist removes the artist along with every album owned by no other
// tracked artist. Cascades take the albums' tracks, stream history, and
// junction rows. It reports whether an artist row was actually deleted.
func (db *DB) DeleteArtist(id string) (bool, error) {
	var soleAlbums []string
	if err := db.
		Raw(`select album_id from artist_albums
			where album_id in (select album_id from artist_albums where artist_id = ?)
			group by album_id having count(artist_id) = 1`, id).
		Scan(&soleAlbums).
		Error; err != nil {
		return false, fmt.Errorf("error finding albums owned only by artist '%s': %w", id, err)
	}

	if len(soleAlbums) > 0 {
		if err := db.
			Where("id in ?", soleAlbums).
			Delete(&data.Album{}).
			Error; err != nil {
			return false, fmt.Errorf("error deleting albums for artist '%s': %w", id, err)
		}
	}

	result := db.Where("id = ?", id).Delete(&data.Artist{})
	if result.Error != nil {
		return false, fmt.Errorf("error deleting artist '%s': %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
