package data

import "time"

// Tracks belong to exactly one album and are deleted with it.
type Track struct {
	ID      string `gorm:"primaryKey"`
	AlbumID string

	Name       string
	DurationMS int64
}

// DailyStream records one track's cumulative play count as observed on one
// sync day. The row for the current (track, day) key is overwritten rather
// than duplicated.
type DailyStream struct {
	Date    time.Time `gorm:"primaryKey"`
	TrackID string    `gorm:"primaryKey"`

	// wall-clock moment the observation was recorded
	Time time.Time

	Streams int64
}
