package player

import (
	"encoding/json"
	"testing"
)

func TestCountUnmarshal(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  Count
		ok    bool
	}{
		{"number", `12345`, 12345, true},
		{"quoted string", `"67890"`, 67890, true},
		{"zero", `"0"`, 0, true},
		{"garbage", `"12a45"`, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var c Count
			err := json.Unmarshal([]byte(tc.input), &c)
			if tc.ok != (err == nil) {
				t.Fatalf("got err %v, want ok=%v", err, tc.ok)
			}
			if tc.ok && c != tc.want {
				t.Errorf("got %d, want %d", c, tc.want)
			}
		})
	}
}

const albumPayload = `{
	"__typename": "Album",
	"uri": "spotify:album:al1",
	"name": "Test Album",
	"date": {"isoString": "2020-06-01T00:00:00Z"},
	"type": "album",
	"artists": {"items": [{"uri": "spotify:artist:a1"}]},
	"coverArt": {
		"extractedColors": {
			"colorRaw": {"hex": "#112233"},
			"colorLight": {"hex": "#445566"},
			"colorDark": {"hex": "#778899"}
		},
		"sources": [{"url": "https://img/1", "height": 640, "width": 640}]
	},
	"sharingInfo": {"shareUrl": "https://open/al1", "shareId": "share1"},
	"tracks": {"items": [
		{"uid": "u1", "track": {
			"uri": "spotify:track:t1",
			"name": "Track One",
			"playcount": "1000000",
			"duration": {"totalMilliseconds": 201000},
			"artists": {"items": [
				{"uri": "spotify:artist:a1"},
				{"uri": "spotify:artist:a2"}
			]}
		}}
	]}
}`

func TestDecodeAlbumUnion(t *testing.T) {
	u, err := DecodeUnion([]byte(albumPayload))
	if err != nil {
		t.Fatal(err)
	}
	album, ok := u.(*AlbumUnion)
	if !ok {
		t.Fatalf("got %T, want *AlbumUnion", u)
	}

	if album.Name != "Test Album" {
		t.Errorf("got name '%s'", album.Name)
	}
	if album.ReleaseISO() != "2020-06-01T00:00:00Z" {
		t.Errorf("got release '%s'", album.ReleaseISO())
	}
	if album.SharingInfo.ShareID != "share1" {
		t.Errorf("got sharing id '%s'", album.SharingInfo.ShareID)
	}
	if len(album.Images()) != 1 || album.Images()[0].Height != 640 {
		t.Errorf("got images %+v", album.Images())
	}
	if album.Colors().ColorRaw.Hex != "#112233" {
		t.Errorf("got palette %+v", album.Colors())
	}

	tracks := album.TrackDetails()
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	if tracks[0].Playcount != 1000000 {
		t.Errorf("got playcount %d", tracks[0].Playcount)
	}
	if uris := tracks[0].ArtistURIs(); len(uris) != 2 || uris[1] != "spotify:artist:a2" {
		t.Errorf("got artist uris %v", uris)
	}
}

func TestDecodeTrackUnion(t *testing.T) {
	payload := `{
		"__typename": "Track",
		"id": "t1",
		"uri": "spotify:track:t1",
		"name": "Track One",
		"duration": {"totalMilliseconds": 201000},
		"trackNumber": 3,
		"playcount": 42
	}`
	u, err := DecodeUnion([]byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	track, ok := u.(*TrackUnion)
	if !ok {
		t.Fatalf("got %T, want *TrackUnion", u)
	}
	if track.Playcount != 42 || track.TrackNumber != 3 {
		t.Errorf("got %+v", track)
	}
}

func TestDecodeUnknownUnion(t *testing.T) {
	if _, err := DecodeUnion([]byte(`{"__typename": "Playlist"}`)); err == nil {
		t.Error("expected error for unknown union type")
	}
}
