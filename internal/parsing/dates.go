// Package parsing provides identifier, date, URL and MIME derivation helpers.
package parsing

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// ParseUploadDate parses the 8-digit upload date strings reported by the
// backend (e.g. "20170920") into a Unix timestamp in local time.
//
// An empty string means "unknown" and yields 0. A non-empty string that is
// not YYYYMMDD is an error; callers decide whether to treat that as fatal
// or coerce to 0.
func ParseUploadDate(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	t, err := time.ParseInLocation("20060102", s, time.Local)
	if err != nil {
		return 0, fmt.Errorf("unable to parse upload date %q: %w", s, err)
	}
	return t.Unix(), nil
}

// ParseReleaseDate leniently parses free-form date strings found on enriched
// entries when no upload date is available. Unparseable input yields 0.
func ParseReleaseDate(s string) int64 {
	if s == "" {
		return 0
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return 0
	}
	return t.Unix()
}
