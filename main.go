// streams continuously reconciles a catalog of tracked artists against the
// Spotify web API and a play-count scraping endpoint, recording one settled
// play-count observation per track per day.
//
// See db/schema.sql for info about the resulting database.
package main

import "github.com/amonks/streams/cmd"

func main() {
	cmd.Execute()
}
