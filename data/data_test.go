package data

import (
	"testing"
	"time"
)

func TestDay(t *testing.T) {
	today := Day(0)
	if today.Location() != time.UTC {
		t.Errorf("got location %v, want UTC", today.Location())
	}
	if h, m, s := today.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("got clock %d:%d:%d, want midnight", h, m, s)
	}

	yesterday := Day(1)
	if got := today.Sub(yesterday); got != 24*time.Hour {
		t.Errorf("got %v between consecutive days, want 24h", got)
	}
}

func TestImageListScan(t *testing.T) {
	var l ImageList
	if err := l.Scan(`[{"url": "https://img/1", "height": 300, "width": 300}]`); err != nil {
		t.Fatal(err)
	}
	if len(l) != 1 || l[0].URL != "https://img/1" {
		t.Errorf("got %+v", l)
	}

	v, err := ImageList(nil).Value()
	if err != nil {
		t.Fatal(err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("got %s, want a nil list stored as []", v)
	}
}

func TestPaletteScan(t *testing.T) {
	var p Palette
	if err := p.Scan([]byte(`{"colorRaw": {"hex": "#abcdef"}}`)); err != nil {
		t.Fatal(err)
	}
	if p.ColorRaw.Hex != "#abcdef" {
		t.Errorf("got %+v", p)
	}

	if err := p.Scan(42); err == nil {
		t.Error("expected error scanning a non-text value")
	}
}
