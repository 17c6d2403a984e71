package db

// StreamsReady decides whether a freshly observed play count should be
// recorded as the current sync day's snapshot, given the track's most recent
// recorded values (most recent first).
//
// The upstream counter only increases and rolls over to a new day's figure
// asynchronously, so recording on first sight risks capturing a stale or
// transitional value. A value is recorded when there is no history yet, when
// it differs from the last recorded value, or when the last two recorded
// values are within 100 of each other: a small gap means the counter is still
// settling right after rollover and fresh values should keep being captured
// until it stabilizes.
func StreamsReady(history []int64, observed int64) bool {
	if len(history) == 0 {
		return true
	}
	if history[0] != observed {
		return true
	}
	if len(history) >= 2 && history[0]-history[1] <= 100 {
		return true
	}
	return false
}

// CompareStreams applies StreamsReady to the stored history for the track.
// known is false when the track has never been ingested at all, in which case
// the observation must be skipped.
func (db *DB) CompareStreams(trackID string, observed int64) (ready, known bool, err error) {
	track, err := db.GetTrack(trackID)
	if err != nil {
		return false, false, err
	}
	if track == nil {
		return false, false, nil
	}

	streams, err := db.RecentStreams(trackID, 3)
	if err != nil {
		return false, true, err
	}

	history := make([]int64, len(streams))
	for i, ds := range streams {
		history[i] = ds.Streams
	}
	return StreamsReady(history, observed), true, nil
}
