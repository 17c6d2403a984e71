// Package spotify is a client for the parts of the Spotify Web API the sync
// engine needs: artist detail (name, images, follower counts) and the album
// listings used for catalog discovery.
package spotify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/amonks/streams/data"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	apiBase  = "https://api.spotify.com/v1"
	tokenURL = "https://accounts.spotify.com/api/token"
)

// New creates a new Spotify client with the given clientID and clientSecret.
// Requests are paced to stay under the API's rate limit; a 429 is returned as
// an error and retried by the sync loops above, not here.
func New(clientID, clientSecret string) *Client {
	return &Client{
		http:         resty.New(),
		limiter:      rate.NewLimiter(rate.Every(time.Second/10), 1),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Client holds credentials and a cached access token.
type Client struct {
	mu sync.Mutex

	http    *resty.Client
	limiter *rate.Limiter

	clientID     string
	clientSecret string

	accessToken string
	expiresAt   time.Time
}

// ArtistDetail is the metadata the engine keeps for one artist.
type ArtistDetail struct {
	ID        string
	Name      string
	Images    []data.Image
	Followers int64
}

// FetchArtists batch-fetches current detail for up to 50 artists.
func (spo *Client) FetchArtists(ctx context.Context, ids []string) ([]ArtistDetail, error) {
	var results struct {
		Artists []struct {
			ID        string
			Name      string
			Images    []data.Image
			Followers struct {
				Total int64
			}
		}
	}
	if err := spo.get(ctx, apiBase+"/artists", map[string]string{
		"ids": strings.Join(ids, ","),
	}, &results); err != nil {
		return nil, err
	}

	artists := make([]ArtistDetail, len(results.Artists))
	for i, fetched := range results.Artists {
		artists[i] = ArtistDetail{
			ID:        fetched.ID,
			Name:      fetched.Name,
			Images:    fetched.Images,
			Followers: fetched.Followers.Total,
		}
	}
	return artists, nil
}

// FetchArtistAlbums returns the ids of every album, single, and compilation
// credited to the artist, following pagination to the end of each group.
func (spo *Client) FetchArtistAlbums(ctx context.Context, artistID string) ([]string, error) {
	var albumIDs []string
	for _, group := range []string{"album", "single", "compilation"} {
		for offset := 0; ; offset += 50 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			var page struct {
				Next  string
				Items []struct {
					ID string
				}
			}
			if err := spo.get(ctx, fmt.Sprintf("%s/artists/%s/albums", apiBase, artistID), map[string]string{
				"include_groups": group,
				"limit":          "50",
				"offset":         fmt.Sprintf("%d", offset),
			}, &page); err != nil {
				return nil, err
			}

			for _, album := range page.Items {
				albumIDs = append(albumIDs, album.ID)
			}
			if page.Next == "" {
				break
			}
		}
	}
	return albumIDs, nil
}

func (spo *Client) get(ctx context.Context, url string, query map[string]string, result interface{}) error {
	if err := spo.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := spo.token(ctx)
	if err != nil {
		return err
	}

	resp, err := spo.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(query).
		SetResult(result).
		Get(url)
	if err != nil {
		return fmt.Errorf("error fetching '%s': %w", url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status %d from '%s'", resp.StatusCode(), url)
	}
	return nil
}

func (spo *Client) token(ctx context.Context) (string, error) {
	spo.mu.Lock()
	defer spo.mu.Unlock()

	if spo.accessToken != "" && spo.expiresAt.After(time.Now().Add(time.Second)) {
		return spo.accessToken, nil
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	requestAt := time.Now()
	resp, err := spo.http.R().
		SetContext(ctx).
		SetBasicAuth(spo.clientID, spo.clientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		SetResult(&result).
		Post(tokenURL)
	if err != nil {
		return "", fmt.Errorf("token request error: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("token fetch: unexpected status %d", resp.StatusCode())
	}

	spo.accessToken = result.AccessToken
	spo.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn) * time.Second)
	return spo.accessToken, nil
}
