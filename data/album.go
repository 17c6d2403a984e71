package data

import (
	"database/sql"
	"time"
)

// Albums are discovered from tracked artists and refreshed from the scraped
// album payload on every daily update.
type Album struct {
	ID string `gorm:"primaryKey"`

	Name        string
	ReleaseDate time.Time

	// one of "single", "album", or "compilation"
	AlbumType string

	Images    ImageList
	Colors    Palette
	Display   bool
	SharingID string

	// Updated holds the last sync day on which the album was successfully
	// ingested. It equals Day(0) if and only if the album is done for the
	// current pass, which is what makes passes idempotent and resumable.
	Updated sql.NullTime
}
