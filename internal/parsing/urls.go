package parsing

import (
	"strings"

	"podtube/internal/domain/consts"
)

// GUID derives the canonical episode GUID for a video ID.
//
// The format matches the GUIDs YouTube itself uses in its native feeds, so
// episodes discovered through the backend and episodes discovered through
// native feed parsing of the same channel dedup against each other.
func GUID(videoID string) string {
	return consts.GUIDPrefix + videoID
}

// SanitizeURL normalizes URLs embedded in extraction results before they are
// fed back into the backend for re-extraction.
func SanitizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return u
	}
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	if !strings.Contains(u, "://") {
		return "https://" + u
	}
	return u
}
