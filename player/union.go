// Package player fetches album and track snapshots from the endpoint that
// intercepts the Spotify web player, which is the only source of per-track
// play counts.
package player

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/amonks/streams/data"
)

// Count is a play count that the endpoint serves either as a JSON number or
// as a quoted string, depending on magnitude.
type Count int64

func (c *Count) UnmarshalJSON(bs []byte) error {
	s := string(bs)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("bad playcount %s: %w", string(bs), err)
	}
	*c = Count(n)
	return nil
}

// Union is a payload from the player endpoint, discriminated by its
// "__typename" field: either an *AlbumUnion or a *TrackUnion.
type Union interface {
	unionType() string
}

// DecodeUnion decodes a payload into the variant named by its type field.
func DecodeUnion(bs []byte) (Union, error) {
	var probe struct {
		Typename string `json:"__typename"`
	}
	if err := json.Unmarshal(bs, &probe); err != nil {
		return nil, fmt.Errorf("union decode error: %w", err)
	}

	switch probe.Typename {
	case "Album":
		var u AlbumUnion
		if err := json.Unmarshal(bs, &u); err != nil {
			return nil, fmt.Errorf("album union decode error: %w", err)
		}
		return &u, nil
	case "Track":
		var u TrackUnion
		if err := json.Unmarshal(bs, &u); err != nil {
			return nil, fmt.Errorf("track union decode error: %w", err)
		}
		return &u, nil
	default:
		return nil, fmt.Errorf("unknown union type '%s'", probe.Typename)
	}
}

type artistRef struct {
	URI string `json:"uri"`
}

type artistList struct {
	Items []artistRef `json:"items"`
}

type dateObject struct {
	ISOString string `json:"isoString"`
}

type duration struct {
	TotalMilliseconds int64 `json:"totalMilliseconds"`
}

type coverArt struct {
	ExtractedColors data.Palette `json:"extractedColors"`
	Sources         []data.Image `json:"sources"`
}

// SharingInfo carries the album's share identifier.
type SharingInfo struct {
	ShareURL string `json:"shareUrl"`
	ShareID  string `json:"shareId"`
}

// TrackDetail is one track inside an album union, including the current
// cumulative play count.
type TrackDetail struct {
	URI       string     `json:"uri"`
	Name      string     `json:"name"`
	Playcount Count      `json:"playcount"`
	Duration  duration   `json:"duration"`
	Artists   artistList `json:"artists"`
}

// ArtistURIs returns the resource URIs of every artist credited on the track.
func (t *TrackDetail) ArtistURIs() []string {
	uris := make([]string, len(t.Artists.Items))
	for i, a := range t.Artists.Items {
		uris[i] = a.URI
	}
	return uris
}

type trackEntry struct {
	UID   string      `json:"uid"`
	Track TrackDetail `json:"track"`
}

type trackList struct {
	Items []trackEntry `json:"items"`
}

// AlbumUnion is the full scraped album snapshot: metadata, cover art, sharing
// info, and every track with its current play count.
type AlbumUnion struct {
	Typename    string      `json:"__typename"`
	URI         string      `json:"uri"`
	Name        string      `json:"name"`
	Date        dateObject  `json:"date"`
	AlbumType   string      `json:"type"`
	Artists     artistList  `json:"artists"`
	CoverArt    coverArt    `json:"coverArt"`
	SharingInfo SharingInfo `json:"sharingInfo"`
	Tracks      trackList   `json:"tracks"`
}

func (*AlbumUnion) unionType() string { return "Album" }

// ReleaseISO returns the album's release timestamp string.
func (u *AlbumUnion) ReleaseISO() string { return u.Date.ISOString }

// Images returns the cover art renditions.
func (u *AlbumUnion) Images() []data.Image { return u.CoverArt.Sources }

// Colors returns the extracted cover art palette.
func (u *AlbumUnion) Colors() data.Palette { return u.CoverArt.ExtractedColors }

// TrackDetails returns every track in album order.
func (u *AlbumUnion) TrackDetails() []TrackDetail {
	tracks := make([]TrackDetail, len(u.Tracks.Items))
	for i, entry := range u.Tracks.Items {
		tracks[i] = entry.Track
	}
	return tracks
}

// TrackUnion is the scraped snapshot of a single track.
type TrackUnion struct {
	Typename    string      `json:"__typename"`
	ID          string      `json:"id"`
	URI         string      `json:"uri"`
	Name        string      `json:"name"`
	Duration    duration    `json:"duration"`
	TrackNumber int64       `json:"trackNumber"`
	Playcount   Count       `json:"playcount"`
	SharingInfo SharingInfo `json:"sharingInfo"`
}

func (*TrackUnion) unionType() string { return "Track" }
