package fetcher

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"
)

type fakeCatalog struct {
	mu     sync.Mutex
	albums map[string][]string
	fails  map[string]int // remaining failures per artist
}

func (f *fakeCatalog) FetchArtistAlbums(_ context.Context, artistID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fails[artistID] > 0 {
		f.fails[artistID]--
		return nil, fmt.Errorf("transient failure for '%s'", artistID)
	}
	return f.albums[artistID], nil
}

type fakeAppearsOn struct {
	mu     sync.Mutex
	albums map[string][]string
	broken bool
}

func (f *fakeAppearsOn) ArtistAppearsOn(_ context.Context, artistID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken {
		return nil, fmt.Errorf("appears-on endpoint down")
	}
	return f.albums[artistID], nil
}

func TestDiscoverMergesSources(t *testing.T) {
	api := &fakeCatalog{albums: map[string][]string{
		"a1": {"own1", "shared"},
		"a2": {"own2"},
	}}
	player := &fakeAppearsOn{albums: map[string][]string{
		"a1": {"guest1", "shared"},
	}}

	f := New(api, player, 0, zap.NewNop())
	found, err := f.Discover(context.Background(), []string{"a1", "a2"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"own1", "own2", "guest1", "shared"}
	if len(found) != len(want) {
		t.Fatalf("got %d albums, want %d: %v", len(found), len(want), found)
	}
	for _, id := range want {
		if _, ok := found[id]; !ok {
			t.Errorf("missing album '%s'", id)
		}
	}
}

func TestDiscoverRetriesFailedArtists(t *testing.T) {
	api := &fakeCatalog{
		albums: map[string][]string{"a1": {"al1"}, "a2": {"al2"}},
		fails:  map[string]int{"a2": 3},
	}
	player := &fakeAppearsOn{}

	f := New(api, player, 5, zap.NewNop())
	found, err := f.Discover(context.Background(), []string{"a1", "a2"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := found["al2"]; !ok {
		t.Errorf("album from retried artist missing: %v", found)
	}
}

func TestDiscoverKeepsPartialResults(t *testing.T) {
	api := &fakeCatalog{
		albums: map[string][]string{"good": {"al1"}},
		fails:  map[string]int{"bad": 1 << 30},
	}
	player := &fakeAppearsOn{}

	f := New(api, player, 3, zap.NewNop())
	found, err := f.Discover(context.Background(), []string{"good", "bad"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := found["al1"]; !ok {
		t.Errorf("got %v, want the healthy artist's album preserved", found)
	}
}

func TestDiscoverEmptyInput(t *testing.T) {
	f := New(&fakeCatalog{}, &fakeAppearsOn{}, 0, zap.NewNop())
	if _, err := f.Discover(context.Background(), nil); err == nil {
		t.Error("expected error for empty artist list")
	}
}

func TestDiscoverNothingFound(t *testing.T) {
	api := &fakeCatalog{fails: map[string]int{"a1": 1 << 30}}
	player := &fakeAppearsOn{broken: true}

	f := New(api, player, 2, zap.NewNop())
	if _, err := f.Discover(context.Background(), []string{"a1"}); err == nil {
		t.Error("expected error when every attempt fails")
	}
}

func TestDiscoverCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(&fakeCatalog{}, &fakeAppearsOn{}, 0, zap.NewNop())
	if _, err := f.Discover(ctx, []string{"a1"}); err == nil {
		t.Error("expected context error")
	}
}
