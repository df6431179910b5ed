package app

import (
	"context"
	"testing"

	"podtube/internal/backend"
	"podtube/internal/models"
	"podtube/internal/registry"
	"podtube/internal/scraper"
)

// stubExtractor returns an empty playlist for any URL and records what was
// asked of it.
type stubExtractor struct {
	extractedURLs []string
}

func (s *stubExtractor) ExtractMetadata(_ context.Context, url string) (*backend.VideoTree, error) {
	s.extractedURLs = append(s.extractedURLs, url)
	return &backend.VideoTree{Type: "playlist", ID: "chan", Title: "Chan"}, nil
}

func (s *stubExtractor) ResolveEntry(_ context.Context, url, _ string) (*backend.VideoTree, error) {
	s.extractedURLs = append(s.extractedURLs, url)
	return &backend.VideoTree{Type: "playlist", ID: "chan", Title: "Chan"}, nil
}

func (s *stubExtractor) Entries(_ context.Context, tree *backend.VideoTree) (backend.EntrySource, error) {
	return backend.NewSliceSource(tree.Entries), nil
}

func (s *stubExtractor) RefreshMetadata(context.Context, []*backend.VideoTree) error {
	return nil
}

func (s *stubExtractor) FetchMedia(context.Context, backend.FetchRequest) (*backend.MediaResult, error) {
	return &backend.MediaResult{}, nil
}

func newTestExtension(ext backend.Extractor) *Extension {
	x := NewExtension(ext, scraper.New(), func() string { return "18" })
	// Scraper lookups hit the network; tests never want that.
	x.resolver.CoverLookup = nil
	x.resolver.DescLookup = nil
	return x
}

func TestFetchChannelTranslatesFeedURLs(t *testing.T) {
	tests := []struct {
		name    string
		feedURL string
		wantURL string
	}{
		{
			name:    "channel feed",
			feedURL: "https://www.youtube.com/feeds/videos.xml?channel_id=UC123",
			wantURL: "https://www.youtube.com/channel/UC123",
		},
		{
			name:    "playlist feed",
			feedURL: "https://www.youtube.com/feeds/videos.xml?playlist_id=PL456",
			wantURL: "https://www.youtube.com/playlist?list=PL456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubExtractor{}
			x := newTestExtension(stub)

			res, err := x.FetchChannel(context.Background(), &models.Channel{URL: tt.feedURL}, 0)
			if err != nil {
				t.Fatalf("FetchChannel returned error: %v", err)
			}
			if res == nil {
				t.Fatal("expected the channel to be claimed")
			}
			if res.Status != registry.StatusUpdated {
				t.Errorf("status = %v, want StatusUpdated", res.Status)
			}
			if len(stub.extractedURLs) != 1 || stub.extractedURLs[0] != tt.wantURL {
				t.Errorf("extracted URLs = %v, want [%s]", stub.extractedURLs, tt.wantURL)
			}
		})
	}
}

func TestFetchChannelDeclinesForeignURLs(t *testing.T) {
	urls := []string{
		"https://example.com/feed.xml",
		"https://www.youtube.com/watch?v=abc",
		"https://vimeo.com/channels/staffpicks",
	}

	for _, url := range urls {
		stub := &stubExtractor{}
		x := newTestExtension(stub)

		res, err := x.FetchChannel(context.Background(), &models.Channel{URL: url}, 0)
		if err != nil {
			t.Fatalf("FetchChannel(%q) returned error: %v", url, err)
		}
		if res != nil {
			t.Errorf("FetchChannel(%q) = %+v, want declined (nil)", url, res)
		}
		if len(stub.extractedURLs) != 0 {
			t.Errorf("FetchChannel(%q) hit the backend: %v", url, stub.extractedURLs)
		}
	}
}

func TestResolveDownloaderClaimsWatchURLs(t *testing.T) {
	x := newTestExtension(&stubExtractor{})

	if dl := x.ResolveDownloader(&models.Episode{URL: "https://www.youtube.com/watch?v=abc123"}); dl == nil {
		t.Error("expected episode with watch URL to be claimed")
	}

	// Falls back to the link when the media URL is not a watch URL.
	if dl := x.ResolveDownloader(&models.Episode{
		URL:  "https://cdn.example.com/file.mp4",
		Link: "https://www.youtube.com/watch?v=abc123",
	}); dl == nil {
		t.Error("expected episode with watch link to be claimed")
	}

	if dl := x.ResolveDownloader(&models.Episode{
		URL:  "https://example.com/file.mp4",
		Link: "https://example.com/page",
	}); dl != nil {
		t.Error("expected foreign episode to be declined")
	}
}

func TestRegisterHonorsToggles(t *testing.T) {
	x := newTestExtension(&stubExtractor{})

	reg := registry.New()
	x.Register(reg, false, false)

	res, err := reg.ResolveFeed(context.Background(), &models.Channel{
		URL: "https://www.youtube.com/feeds/videos.xml?channel_id=UC123",
	}, 0)
	if err != nil || res != nil {
		t.Errorf("disabled feed handler still claimed the channel: res=%v err=%v", res, err)
	}
	if dl := reg.ResolveDownloader(&models.Episode{URL: "https://www.youtube.com/watch?v=a"}); dl != nil {
		t.Error("disabled downloader still claimed the episode")
	}

	x.Register(reg, true, true)
	res, err = reg.ResolveFeed(context.Background(), &models.Channel{
		URL: "https://www.youtube.com/feeds/videos.xml?channel_id=UC123",
	}, 0)
	if err != nil {
		t.Fatalf("ResolveFeed returned error: %v", err)
	}
	if res == nil {
		t.Error("enabled feed handler did not claim the channel")
	}
	if dl := reg.ResolveDownloader(&models.Episode{URL: "https://www.youtube.com/watch?v=a"}); dl == nil {
		t.Error("enabled downloader did not claim the episode")
	}
}
