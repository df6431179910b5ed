package feed

import (
	"testing"

	"podtube/internal/backend"
)

func TestFilterEntriesDedup(t *testing.T) {
	src := &strictSource{t: t, entries: []*backend.VideoTree{
		videoStub("a"),
		videoStub("b"),
		videoStub("a"), // same video listed twice
		videoStub("c"),
	}}

	got, err := filterEntries(src, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	seen := make(map[string]struct{})
	for _, e := range got {
		if e.GUID == "" {
			t.Fatalf("entry %q has no GUID assigned", e.ID)
		}
		if _, dup := seen[e.GUID]; dup {
			t.Fatalf("duplicate GUID emitted: %s", e.GUID)
		}
		seen[e.GUID] = struct{}{}
	}

	// First occurrence wins, input order preserved
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("unexpected order: %q %q %q", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestFilterEntriesDropsNonVideos(t *testing.T) {
	linked := &backend.VideoTree{Type: backend.ResultURL, IEKey: "YoutubeTab", ID: "UCother"}
	terminal := &backend.VideoTree{ID: "bare"} // untyped = terminal video node

	src := &strictSource{t: t, entries: []*backend.VideoTree{
		videoStub("a"),
		linked,
		terminal,
	}}

	got, err := filterEntries(src, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "bare" {
		t.Fatalf("unexpected entries: %q %q", got[0].ID, got[1].ID)
	}
}

func TestFilterEntriesEarlyTermination(t *testing.T) {
	// Budget: the filter may read exactly 2 entries to accept 2, then must
	// halt without touching the third.
	src := &strictSource{
		t:        t,
		entries:  []*backend.VideoTree{videoStub("a"), videoStub("b"), videoStub("c"), videoStub("d")},
		maxReads: 2,
	}

	got, err := filterEntries(src, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !src.halted {
		t.Fatalf("expected producer to be halted after reaching the cap")
	}
}

func TestFilterEntriesUnlimited(t *testing.T) {
	src := &strictSource{t: t, entries: []*backend.VideoTree{videoStub("a"), videoStub("b"), videoStub("c")}}

	got, err := filterEntries(src, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected whole sequence for maxEpisodes=0, got %d", len(got))
	}
}
