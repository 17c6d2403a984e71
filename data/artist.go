package data

import "time"

// Artists are the tracked roots of the catalog. A row is created when an
// operator adds the artist and refreshed on every daily update.
type Artist struct {
	// like "06HL4z0CvFAxyc27GXpf02"
	ID string `gorm:"primaryKey"`

	Name   string
	Images ImageList
}

// FollowerInstance records an artist's follower count for one sync day. At
// most one row exists per (artist, day).
type FollowerInstance struct {
	Date     time.Time `gorm:"primaryKey"`
	ArtistID string    `gorm:"primaryKey"`
	Count    int64
}
