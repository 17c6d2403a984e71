package data

// ArtistAlbum is a many-to-many association between a tracked artist and an
// album. Pairs are immutable facts: insert-if-absent, never updated.
type ArtistAlbum struct {
	ArtistID string `gorm:"primaryKey"`
	AlbumID  string `gorm:"primaryKey"`
}

// ArtistTrack is a many-to-many association between a tracked artist and a
// track.
type ArtistTrack struct {
	ArtistID string `gorm:"primaryKey"`
	TrackID  string `gorm:"primaryKey"`
}
