package feed

import (
	"context"
	"errors"
	"testing"

	"podtube/internal/backend"
	"podtube/internal/models"
)

// fakeExtractor serves canned trees and records enrichment batches.
type fakeExtractor struct {
	trees map[string]*backend.VideoTree

	resolveCalls []string
	resolveKeys  []string

	refreshBatches [][]*backend.VideoTree
	refreshErr     error
	enrich         func(e *backend.VideoTree)
}

func (f *fakeExtractor) ExtractMetadata(_ context.Context, url string) (*backend.VideoTree, error) {
	t, ok := f.trees[url]
	if !ok {
		return nil, errors.New("no tree for " + url)
	}
	return t, nil
}

func (f *fakeExtractor) ResolveEntry(_ context.Context, url, ieKey string) (*backend.VideoTree, error) {
	f.resolveCalls = append(f.resolveCalls, url)
	f.resolveKeys = append(f.resolveKeys, ieKey)
	t, ok := f.trees[url]
	if !ok {
		return nil, errors.New("no tree for " + url)
	}
	return t, nil
}

func (f *fakeExtractor) Entries(_ context.Context, tree *backend.VideoTree) (backend.EntrySource, error) {
	return backend.NewSliceSource(tree.Entries), nil
}

func (f *fakeExtractor) RefreshMetadata(_ context.Context, entries []*backend.VideoTree) error {
	f.refreshBatches = append(f.refreshBatches, entries)
	if f.refreshErr != nil {
		return f.refreshErr
	}
	if f.enrich != nil {
		for _, e := range entries {
			f.enrich(e)
		}
	}
	return nil
}

func (f *fakeExtractor) FetchMedia(context.Context, backend.FetchRequest) (*backend.MediaResult, error) {
	return nil, errors.New("not implemented")
}

// strictSource fails the test if consumed past its read budget, modelling
// a paginated producer whose extra reads would cost network fetches.
type strictSource struct {
	t        *testing.T
	entries  []*backend.VideoTree
	pos      int
	maxReads int // 0 = unlimited
	reads    int
	halted   bool
}

func (s *strictSource) Next() (*backend.VideoTree, error) {
	if s.halted {
		s.t.Fatalf("Next called after Halt")
	}
	s.reads++
	if s.maxReads > 0 && s.reads > s.maxReads {
		s.t.Fatalf("source over-consumed: read %d entries, budget %d", s.reads, s.maxReads)
	}
	if s.pos >= len(s.entries) {
		return nil, nil
	}
	e := s.entries[s.pos]
	s.pos++
	return e, nil
}

func (s *strictSource) Halt() {
	s.halted = true
}

// videoStub builds a flat video entry as it appears in channel listings.
func videoStub(id string) *backend.VideoTree {
	return &backend.VideoTree{
		Type:       backend.ResultURL,
		IEKey:      "Youtube",
		ID:         id,
		Title:      "video " + id,
		URL:        "https://www.youtube.com/watch?v=" + id,
		WebpageURL: "https://www.youtube.com/watch?v=" + id,
	}
}

// recordingSaver collects saved episodes.
type recordingSaver struct {
	saved []*models.Episode
}

func (r *recordingSaver) SaveEpisode(e *models.Episode) error {
	r.saved = append(r.saved, e)
	return nil
}

// fakeFactory creates episodes bound to a recordingSaver.
type fakeFactory struct {
	channelID int64
	saver     *recordingSaver
}

func (f *fakeFactory) Create(fields models.EpisodeFields) *models.Episode {
	return models.NewEpisode(f.channelID, fields, f.saver)
}
