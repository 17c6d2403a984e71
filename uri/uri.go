// Package uri extracts canonical entity IDs from Spotify resource URIs.
package uri

import (
	"fmt"
	"strings"
)

// ID returns the entity ID from a colon-delimited resource URI like
// "spotify:album:5Z9iiGl2FcIfa3BMiv6OIw".
//
// URIs come from trusted API payloads, never from user input, so a malformed
// one means a programming error upstream; ID panics rather than returning an
// error every caller would have to thread through.
func ID(uri string) string {
	parts := strings.Split(uri, ":")
	if len(parts) < 3 {
		panic(fmt.Sprintf("malformed resource uri '%s'", uri))
	}
	return parts[2]
}
