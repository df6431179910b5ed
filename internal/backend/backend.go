package backend

import (
	"context"
)

// ProgressStatus classifies backend progress events.
type ProgressStatus int

const (
	StatusUnknown ProgressStatus = iota
	StatusDownloading
	StatusFinished
	StatusError
)

// ProgressEvent is one backend-native progress report for a single physical
// fragment of a download. Byte counts restart from zero on each fragment.
type ProgressEvent struct {
	Status             ProgressStatus
	DownloadedBytes    int64
	TotalBytes         int64 // exact total, 0 when unknown
	TotalBytesEstimate int64 // estimate, 0 when unknown
	Err                error // set for StatusError
}

// ProgressHook receives backend progress events during a media fetch.
type ProgressHook func(ProgressEvent)

// FetchRequest describes one media fetch.
type FetchRequest struct {
	URL            string
	DestPath       string
	NoPart         bool // don't append a partial suffix, the caller manages one
	Retries        int
	FormatSelector string
	Hook           ProgressHook
}

// MediaResult describes a completed media fetch.
type MediaResult struct {
	// Ext is the extension of the produced file, without leading dot.
	// May be empty, the backend does not always report one.
	Ext string
	// URL is the backend-reported final source URL, may be empty.
	URL string
}

// EntrySource is a pull-based producer of playlist entries. Producers may
// paginate lazily, fetching further pages as the caller keeps reading.
//
// Next returns (nil, nil) once the sequence is exhausted. Halt stops the
// producer so no further pages are fetched; it is safe to call more than
// once and after exhaustion.
type EntrySource interface {
	Next() (*VideoTree, error)
	Halt()
}

// Extractor is the video-extraction backend consumed by the feed and
// download layers.
type Extractor interface {
	// ExtractMetadata resolves a URL into an unprocessed VideoTree without
	// downloading media or recursing into entries.
	ExtractMetadata(ctx context.Context, url string) (*VideoTree, error)

	// ResolveEntry re-extracts a redirecting node, hinting the backend with
	// the extractor key reported by the node it came from.
	ResolveEntry(ctx context.Context, url, ieKey string) (*VideoTree, error)

	// Entries returns a lazy entry source over a resolved playlist node.
	Entries(ctx context.Context, tree *VideoTree) (EntrySource, error)

	// RefreshMetadata enriches the given entries in place with full
	// per-video details (description, duration, filesize, thumbnail,
	// formats). One batched round-trip for all entries.
	RefreshMetadata(ctx context.Context, entries []*VideoTree) error

	// FetchMedia downloads media to the requested path, reporting progress
	// through the request's hook.
	FetchMedia(ctx context.Context, req FetchRequest) (*MediaResult, error)
}

// sliceSource serves entries already materialized in memory.
type sliceSource struct {
	entries []*VideoTree
	pos     int
	halted  bool
}

// NewSliceSource wraps an in-memory entry list in the EntrySource contract.
func NewSliceSource(entries []*VideoTree) EntrySource {
	return &sliceSource{entries: entries}
}

func (s *sliceSource) Next() (*VideoTree, error) {
	if s.halted || s.pos >= len(s.entries) {
		return nil, nil
	}
	e := s.entries[s.pos]
	s.pos++
	return e, nil
}

func (s *sliceSource) Halt() {
	s.halted = true
}
