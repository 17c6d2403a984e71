// Package fetcher discovers the full album universe reachable from a set of
// tracked artists.
package fetcher

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds how many times failed artists are retried.
const DefaultMaxAttempts = 13

// CatalogSource lists an artist's own albums, singles, and compilations.
type CatalogSource interface {
	FetchArtistAlbums(ctx context.Context, artistID string) ([]string, error)
}

// AppearsOnSource lists the albums an artist guest-appears on.
type AppearsOnSource interface {
	ArtistAppearsOn(ctx context.Context, artistID string) ([]string, error)
}

// New creates a Fetcher over the two discovery sources. maxAttempts <= 0
// falls back to DefaultMaxAttempts.
func New(api CatalogSource, player AppearsOnSource, maxAttempts int, log *zap.Logger) *Fetcher {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Fetcher{
		api:         api,
		player:      player,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Fetcher resolves artist ids to album ids, isolating and retrying only the
// artists whose requests failed.
type Fetcher struct {
	api         CatalogSource
	player      AppearsOnSource
	maxAttempts int
	log         *zap.Logger
}

type result struct {
	artistID string
	albumIDs []string
	err      error
}

// Discover returns the union of all album ids owned or guest-appeared-on by
// any of the given artists. Each attempt issues one concurrent query per
// artist per source; artists with a failed query are carried into the next
// attempt, so transient failures shrink the working set instead of aborting
// the pass. Partial results survive artists that fail every attempt; Discover
// errors only when the input is empty or nothing at all could be fetched.
func (f *Fetcher) Discover(ctx context.Context, artistIDs []string) (map[string]struct{}, error) {
	if len(artistIDs) == 0 {
		return nil, fmt.Errorf("no artists to discover albums for")
	}

	pending := make(map[string]struct{}, len(artistIDs))
	for _, id := range artistIDs {
		pending[id] = struct{}{}
	}

	found := map[string]struct{}{}
	for attempt := 0; len(pending) > 0 && attempt < f.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results := make(chan result)
		var wg sync.WaitGroup
		for id := range pending {
			wg.Add(2)
			go func(id string) {
				defer wg.Done()
				albumIDs, err := f.api.FetchArtistAlbums(ctx, id)
				results <- result{id, albumIDs, err}
			}(id)
			go func(id string) {
				defer wg.Done()
				albumIDs, err := f.player.ArtistAppearsOn(ctx, id)
				results <- result{id, albumIDs, err}
			}(id)
		}
		go func() {
			wg.Wait()
			close(results)
		}()

		retry := map[string]struct{}{}
		for res := range results {
			if res.err != nil {
				f.log.Warn("artist discovery failed",
					zap.String("artist", res.artistID),
					zap.Int("attempt", attempt),
					zap.Error(res.err))
				retry[res.artistID] = struct{}{}
				continue
			}
			for _, albumID := range res.albumIDs {
				found[albumID] = struct{}{}
			}
		}
		pending = retry
	}

	if len(pending) > 0 {
		f.log.Warn("giving up on artists", zap.Int("count", len(pending)))
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("discovered no albums for %d artists", len(artistIDs))
	}
	return found, nil
}
