// Package data holds the entities stored in the streams database.
//
// Artists are the root of ownership: albums and tracks are discovered
// transitively from tracked artists and have no independent lifecycle. Play
// counts are recorded as an append-mostly time series in daily_streams, one
// row per track per sync day.
//
// See db/schema.sql for info about the resulting database.
package data

import "time"

// Day returns the sync day for the given offset in days before today: the
// local calendar date normalized to midnight UTC. Day(0) keys "already
// updated today" checks on albums; Day(1) keys daily_streams and
// follower_instances rows, since a settled play count describes the day that
// just ended.
func Day(offset int) time.Time {
	d := time.Now().AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
