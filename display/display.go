// Package display assembles read-only report views by joining albums,
// tracks, and their recorded stream history.
package display

import (
	"time"

	"github.com/amonks/streams/data"
	"github.com/amonks/streams/db"
)

// TrackRow is one track's recent streaming summary. Differences are nil when
// there is not enough history to compute them.
type TrackRow struct {
	Name           string `json:"name"`
	Total          *int64 `json:"total"`
	DifferenceDay  *int64 `json:"differenceDay"`
	DifferenceWeek *int64 `json:"differenceWeek"`
}

// AlbumDisplay is an album with per-track summaries and album-level sums.
type AlbumDisplay struct {
	Name           string         `json:"name"`
	Date           *time.Time     `json:"date"`
	ReleaseDate    time.Time      `json:"releaseDate"`
	Colors         data.Palette   `json:"colors"`
	Images         data.ImageList `json:"images"`
	SharingID      string         `json:"sharingId"`
	Tracks         []TrackRow     `json:"tracks"`
	Total          int64          `json:"total"`
	DifferenceDay  int64          `json:"differenceDay"`
	DifferenceWeek int64          `json:"differenceWeek"`
}

// ArtistDisplay is an artist with a display album for everything they are
// linked to.
type ArtistDisplay struct {
	Name   string         `json:"name"`
	Images data.ImageList `json:"images"`
	Albums []AlbumDisplay `json:"albums"`
}

// Album builds the display view of one album, or nil if the album is
// unknown.
func Album(store *db.DB, albumID string) (*AlbumDisplay, error) {
	album, err := store.GetAlbum(albumID)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, nil
	}

	tracks, err := store.AlbumTracks(album.ID)
	if err != nil {
		return nil, err
	}

	out := &AlbumDisplay{
		Name:        album.Name,
		ReleaseDate: album.ReleaseDate,
		Colors:      album.Colors,
		Images:      album.Images,
		SharingID:   album.SharingID,
		Tracks:      make([]TrackRow, 0, len(tracks)),
	}
	if album.Updated.Valid {
		updated := album.Updated.Time
		out.Date = &updated
	}

	for _, track := range tracks {
		row, err := trackRow(store, &track)
		if err != nil {
			return nil, err
		}
		if row.Total != nil {
			out.Total += *row.Total
		}
		if row.DifferenceDay != nil {
			out.DifferenceDay += *row.DifferenceDay
		}
		if row.DifferenceWeek != nil {
			out.DifferenceWeek += *row.DifferenceWeek
		}
		out.Tracks = append(out.Tracks, row)
	}
	return out, nil
}

// Artist builds the display view of one artist, or nil if the artist isn't
// tracked.
func Artist(store *db.DB, artistID string) (*ArtistDisplay, error) {
	artist, err := store.GetArtist(artistID)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, nil
	}

	albums, err := store.ArtistAlbums(artist.ID)
	if err != nil {
		return nil, err
	}

	out := &ArtistDisplay{
		Name:   artist.Name,
		Images: artist.Images,
		Albums: make([]AlbumDisplay, 0, len(albums)),
	}
	for _, album := range albums {
		view, err := Album(store, album.ID)
		if err != nil {
			return nil, err
		}
		if view != nil {
			out.Albums = append(out.Albums, *view)
		}
	}
	return out, nil
}

// trackRow summarizes the last 8 recorded days: current total, change since
// the previous day, and change over the last week.
func trackRow(store *db.DB, track *data.Track) (TrackRow, error) {
	streams, err := store.RecentStreams(track.ID, 8)
	if err != nil {
		return TrackRow{}, err
	}

	row := TrackRow{Name: track.Name}
	if len(streams) > 0 {
		row.Total = &streams[0].Streams
	}
	if len(streams) >= 2 {
		diff := streams[0].Streams - streams[1].Streams
		row.DifferenceDay = &diff
	}
	if len(streams) >= 8 {
		diff := streams[0].Streams - streams[7].Streams
		row.DifferenceWeek = &diff
	}
	return row, nil
}
