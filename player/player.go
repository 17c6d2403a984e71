package player

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// New creates a client for the player endpoints. Each endpoint takes a GET
// request with a one-field JSON body naming the entity to fetch.
func New(albumEndpoint, trackEndpoint, artistEndpoint string) *Client {
	return &Client{
		http:           resty.New().SetAllowGetMethodPayload(true),
		albumEndpoint:  albumEndpoint,
		trackEndpoint:  trackEndpoint,
		artistEndpoint: artistEndpoint,
	}
}

// Client talks to the scraping endpoints. It performs no transport-level
// retries; failed fetches are retried by the sync loops above it.
type Client struct {
	http *resty.Client

	albumEndpoint  string
	trackEndpoint  string
	artistEndpoint string
}

// AlbumUnion fetches the full scraped snapshot of one album.
func (c *Client) AlbumUnion(ctx context.Context, albumID string) (*AlbumUnion, error) {
	bs, err := c.get(ctx, c.albumEndpoint, "albumID", albumID)
	if err != nil {
		return nil, err
	}
	union, err := DecodeUnion(bs)
	if err != nil {
		return nil, fmt.Errorf("album '%s': %w", albumID, err)
	}
	album, ok := union.(*AlbumUnion)
	if !ok {
		return nil, fmt.Errorf("album '%s': unexpected %s union", albumID, union.unionType())
	}
	return album, nil
}

// TrackUnion fetches the scraped snapshot of one track.
func (c *Client) TrackUnion(ctx context.Context, trackID string) (*TrackUnion, error) {
	bs, err := c.get(ctx, c.trackEndpoint, "trackID", trackID)
	if err != nil {
		return nil, err
	}
	union, err := DecodeUnion(bs)
	if err != nil {
		return nil, fmt.Errorf("track '%s': %w", trackID, err)
	}
	track, ok := union.(*TrackUnion)
	if !ok {
		return nil, fmt.Errorf("track '%s': unexpected %s union", trackID, union.unionType())
	}
	return track, nil
}

// ArtistAppearsOn fetches the ids of albums the artist guest-appears on,
// which the web API's own album listing does not include.
func (c *Client) ArtistAppearsOn(ctx context.Context, artistID string) ([]string, error) {
	bs, err := c.get(ctx, c.artistEndpoint, "artistID", artistID)
	if err != nil {
		return nil, err
	}
	var albumIDs []string
	if err := json.Unmarshal(bs, &albumIDs); err != nil {
		return nil, fmt.Errorf("artist '%s': appears-on decode error: %w", artistID, err)
	}
	return albumIDs, nil
}

func (c *Client) get(ctx context.Context, endpoint, key, value string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{key: value}).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s '%s': %w", key, value, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %d fetching %s '%s'", resp.StatusCode(), key, value)
	}
	return resp.Body(), nil
}
