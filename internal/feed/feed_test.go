package feed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"podtube/internal/backend"
)

func newTestFeed(t *testing.T, ext *fakeExtractor, maxEpisodes int, entries ...*backend.VideoTree) *YoutubeFeed {
	t.Helper()
	tree := &backend.VideoTree{
		Type:       backend.ResultPlaylist,
		Title:      "chan",
		WebpageURL: "https://www.youtube.com/channel/UCx",
		Entries:    entries,
	}
	f, err := NewFeed(context.Background(), "https://www.youtube.com/channel/UCx", "", "", maxEpisodes, tree, ext)
	if err != nil {
		t.Fatalf("building feed: %v", err)
	}
	return f
}

func TestGetNewEpisodesIncremental(t *testing.T) {
	ext := &fakeExtractor{}
	f := newTestFeed(t, ext, 0, videoStub("A"), videoStub("B"), videoStub("C"), videoStub("D"))

	saver := &recordingSaver{}
	known := map[string]struct{}{
		"yt:video:A": {},
		"yt:video:B": {},
	}

	episodes, allGUIDs, err := f.GetNewEpisodes(context.Background(), &fakeFactory{channelID: 1, saver: saver}, known)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(episodes) != 2 || episodes[0].GUID != "yt:video:C" || episodes[1].GUID != "yt:video:D" {
		t.Fatalf("unexpected new episodes: %+v", episodes)
	}
	if len(saver.saved) != 2 {
		t.Fatalf("expected 2 saved episodes, got %d", len(saver.saved))
	}

	// allGUIDs covers the whole trimmed list, known or not
	for _, g := range []string{"yt:video:A", "yt:video:B", "yt:video:C", "yt:video:D"} {
		if _, ok := allGUIDs[g]; !ok {
			t.Fatalf("missing %s in allGUIDs", g)
		}
	}
	if len(allGUIDs) != 4 {
		t.Fatalf("expected 4 GUIDs, got %d", len(allGUIDs))
	}

	// Enrichment batched once, with exactly the new entries
	if len(ext.refreshBatches) != 1 {
		t.Fatalf("expected exactly one enrichment call, got %d", len(ext.refreshBatches))
	}
	batch := ext.refreshBatches[0]
	if len(batch) != 2 || batch[0].ID != "C" || batch[1].ID != "D" {
		t.Fatalf("unexpected enrichment batch: %+v", batch)
	}
}

func TestGetNewEpisodesTrimsToCap(t *testing.T) {
	ext := &fakeExtractor{}
	f := newTestFeed(t, ext, 0, videoStub("A"), videoStub("B"), videoStub("C"))
	// Cap lowered after resolution
	f.maxEpisodes = 2

	saver := &recordingSaver{}
	_, allGUIDs, err := f.GetNewEpisodes(context.Background(), &fakeFactory{channelID: 1, saver: saver}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(allGUIDs) != 2 {
		t.Fatalf("expected trimmed GUID set of 2, got %d", len(allGUIDs))
	}
	if len(saver.saved) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(saver.saved))
	}
}

func TestGetNewEpisodesNoNewSkipsEnrichment(t *testing.T) {
	ext := &fakeExtractor{}
	f := newTestFeed(t, ext, 0, videoStub("A"))

	saver := &recordingSaver{}
	episodes, _, err := f.GetNewEpisodes(context.Background(), &fakeFactory{channelID: 1, saver: saver},
		map[string]struct{}{"yt:video:A": {}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(episodes) != 0 {
		t.Fatalf("expected no new episodes, got %d", len(episodes))
	}
	if len(ext.refreshBatches) != 0 {
		t.Fatalf("expected enrichment to be skipped with no new entries")
	}
}

func TestGetNewEpisodesEnrichmentFailureSwallowed(t *testing.T) {
	ext := &fakeExtractor{refreshErr: errors.New("network down")}
	f := newTestFeed(t, ext, 0, videoStub("A"))

	saver := &recordingSaver{}
	episodes, _, err := f.GetNewEpisodes(context.Background(), &fakeFactory{channelID: 1, saver: saver}, nil)
	if err != nil {
		t.Fatalf("enrichment failure must not fail the sync: %v", err)
	}
	if len(episodes) != 1 {
		t.Fatalf("expected episode built from flat fields, got %d", len(episodes))
	}
	ep := episodes[0]
	if ep.Description != "No description available" {
		t.Fatalf("unexpected fallback description: %q", ep.Description)
	}
	if ep.FileSize != 0 || ep.TotalTime != 0 {
		t.Fatalf("expected zero size/duration without enrichment")
	}
	if ep.MimeType != "application/octet-stream" {
		t.Fatalf("unexpected fallback mime type: %q", ep.MimeType)
	}
}

func TestEpisodeFieldDerivation(t *testing.T) {
	ext := &fakeExtractor{enrich: func(e *backend.VideoTree) {
		e.Description = "Great video.\nMore at https://example.com/page"
		e.Thumbnail = "https://img.example/t.jpg"
		e.UploadDate = "20170920"
		e.Duration = 93.4
		e.Ext = "mp4"
		e.RequestedFormats = []*backend.Format{
			{FormatID: "137", Filesize: 100},
			{FormatID: "140", Filesize: 250},
		}
	}}
	f := newTestFeed(t, ext, 0, videoStub("A"))

	saver := &recordingSaver{}
	episodes, _, err := f.GetNewEpisodes(context.Background(), &fakeFactory{channelID: 1, saver: saver}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ep := episodes[0]

	// No top-level filesize: requested format sizes are summed
	if ep.FileSize != 350 {
		t.Fatalf("expected file size 350, got %d", ep.FileSize)
	}
	if ep.MimeType != "video/mp4" {
		t.Fatalf("unexpected mime type: %q", ep.MimeType)
	}
	if want := time.Date(2017, 9, 20, 0, 0, 0, 0, time.Local).Unix(); ep.Published != want {
		t.Fatalf("expected published %d, got %d", want, ep.Published)
	}
	if ep.TotalTime != 93 {
		t.Fatalf("expected duration 93, got %d", ep.TotalTime)
	}

	// HTML description: autolinked URL, breaks, floated thumbnail
	if !strings.Contains(ep.DescriptionHTML, `<a href="https://example.com/page">https://example.com/page</a>`) {
		t.Fatalf("expected autolinked URL in:\n%s", ep.DescriptionHTML)
	}
	if !strings.Contains(ep.DescriptionHTML, "<br>") {
		t.Fatalf("expected newline converted to break")
	}
	if !strings.Contains(ep.DescriptionHTML, `<img src="https://img.example/t.jpg">`) {
		t.Fatalf("expected thumbnail image in html description")
	}
	if !strings.Contains(ep.DescriptionHTML, "max-width: 30vw") {
		t.Fatalf("expected thumbnail bounded to 30vw")
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("<p>hello <b>world</b></p>"); got != "hello world" {
		t.Fatalf("unexpected stripped text: %q", got)
	}
	if got := StripTags("plain text"); got != "plain text" {
		t.Fatalf("plain text should pass through, got %q", got)
	}
	if got := StripTags(""); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}
