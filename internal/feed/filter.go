package feed

import (
	"fmt"

	"podtube/internal/backend"
	"podtube/internal/domain/consts"
	"podtube/internal/parsing"
	"podtube/internal/utils/logging"
)

// filterEntries consumes a raw entry sequence in input order (upstream
// already sorts by decreasing date), keeping only genuine video entries,
// tagging each with its GUID and dropping in-pass duplicates.
//
// The source may be a lazy paginated producer, so the moment the accepted
// count reaches maxEpisodes (when > 0) the producer is halted outright:
// reading further would trigger more network fetches. maxEpisodes == 0
// means unlimited.
func filterEntries(src backend.EntrySource, maxEpisodes int) ([]*backend.VideoTree, error) {
	var filtered []*backend.VideoTree
	seen := make(map[string]struct{})

	for {
		if maxEpisodes > 0 && len(filtered) == maxEpisodes {
			logging.D(1, "reached %d episodes, halting entry enumeration", maxEpisodes)
			src.Halt()
			break
		}

		e, err := src.Next()
		if err != nil {
			src.Halt()
			return nil, fmt.Errorf("reading entry sequence: %w", err)
		}
		if e == nil {
			break
		}

		if !isVideoEntry(e) {
			logging.D(2, "dropping entry not a youtube video: type=%q ie_key=%q id=%q", e.ResultType(), e.IEKey, e.ID)
			continue
		}

		guid := parsing.GUID(e.ID)
		if _, ok := seen[guid]; ok {
			logging.D(1, "dropping already seen entry %s title=%q", guid, e.Title)
			continue
		}

		e.GUID = guid
		seen[guid] = struct{}{}
		filtered = append(filtered, e)
	}

	return filtered, nil
}

// isVideoEntry accepts flat video stubs (url entries claimed by the
// YouTube video extractor) and terminal video nodes. Nested non-video
// entries, e.g. linked channels, are excluded.
func isVideoEntry(e *backend.VideoTree) bool {
	switch e.ResultType() {
	case backend.ResultURL:
		return e.IEKey == consts.YtIEKey
	case backend.ResultVideo:
		return true
	default:
		return false
	}
}
