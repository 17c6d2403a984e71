package player

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func endpointServer(t *testing.T, wantKey string, respond func(value string) (int, string)) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("got method %s, want GET", r.Method)
		}
		bs, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]string
		if err := json.Unmarshal(bs, &body); err != nil {
			t.Fatalf("request body '%s' is not JSON: %v", bs, err)
		}
		value, ok := body[wantKey]
		if !ok {
			t.Errorf("request body %v missing key '%s'", body, wantKey)
		}
		status, payload := respond(value)
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClientTrackUnion(t *testing.T) {
	ts := endpointServer(t, "trackID", func(value string) (int, string) {
		return http.StatusOK, `{
			"__typename": "Track",
			"id": "` + value + `",
			"uri": "spotify:track:` + value + `",
			"name": "Fetched",
			"playcount": "777"
		}`
	})

	c := New("", ts.URL, "")
	track, err := c.TrackUnion(context.Background(), "t1")
	if err != nil {
		t.Fatal(err)
	}
	if track.ID != "t1" || track.Playcount != 777 {
		t.Errorf("got %+v", track)
	}
}

func TestClientAlbumUnion(t *testing.T) {
	ts := endpointServer(t, "albumID", func(value string) (int, string) {
		return http.StatusOK, albumPayload
	})

	c := New(ts.URL, "", "")
	album, err := c.AlbumUnion(context.Background(), "al1")
	if err != nil {
		t.Fatal(err)
	}
	if album.Name != "Test Album" {
		t.Errorf("got %+v", album)
	}
}

func TestClientAlbumUnionWrongVariant(t *testing.T) {
	ts := endpointServer(t, "albumID", func(value string) (int, string) {
		return http.StatusOK, `{"__typename": "Track", "uri": "spotify:track:t1", "playcount": 1}`
	})

	c := New(ts.URL, "", "")
	if _, err := c.AlbumUnion(context.Background(), "al1"); err == nil {
		t.Error("expected error for a track payload on the album endpoint")
	}
}

func TestClientArtistAppearsOn(t *testing.T) {
	ts := endpointServer(t, "artistID", func(value string) (int, string) {
		return http.StatusOK, `["al1", "al2"]`
	})

	c := New("", "", ts.URL)
	albumIDs, err := c.ArtistAppearsOn(context.Background(), "a1")
	if err != nil {
		t.Fatal(err)
	}
	if len(albumIDs) != 2 || albumIDs[0] != "al1" {
		t.Errorf("got %v", albumIDs)
	}
}

func TestClientErrorStatus(t *testing.T) {
	ts := endpointServer(t, "albumID", func(value string) (int, string) {
		return http.StatusBadGateway, `{}`
	})

	c := New(ts.URL, "", "")
	if _, err := c.AlbumUnion(context.Background(), "al1"); err == nil {
		t.Error("expected error for a 502 response")
	}
}
