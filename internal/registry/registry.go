// Package registry implements the host's extension points: the feed
// handler chain and the custom downloader chain. Handlers decline URLs
// they do not recognize by returning nil, letting the next handler try.
package registry

import (
	"context"
	"sync"

	"podtube/internal/contracts"
	"podtube/internal/feed"
	"podtube/internal/models"
)

// FeedStatus tags a feed handler result.
type FeedStatus int

const (
	// StatusUpdated marks a feed that was fetched fresh.
	StatusUpdated FeedStatus = iota
)

// FeedResult wraps a handled feed with its status tag.
type FeedResult struct {
	Status FeedStatus
	Feed   *feed.YoutubeFeed
}

// FeedHandler fetches a custom feed for a channel, or returns (nil, nil)
// to decline it.
type FeedHandler func(ctx context.Context, channel *models.Channel, maxEpisodes int) (*FeedResult, error)

// DownloaderResolver claims an episode for custom download, or returns nil
// to decline it.
type DownloaderResolver func(episode *models.Episode) contracts.Downloader

// Registry holds the registered handler chains.
type Registry struct {
	mu           sync.RWMutex
	feedHandlers []FeedHandler
	downloaders  []DownloaderResolver
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// RegisterFeedHandler appends a feed handler to the chain.
func (r *Registry) RegisterFeedHandler(h FeedHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedHandlers = append(r.feedHandlers, h)
}

// RegisterDownloader appends a downloader resolver to the chain.
func (r *Registry) RegisterDownloader(d DownloaderResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downloaders = append(r.downloaders, d)
}

// ResolveFeed walks the feed handler chain in registration order and
// returns the first non-declined result. A nil result with nil error
// means no handler claimed the channel.
func (r *Registry) ResolveFeed(ctx context.Context, channel *models.Channel, maxEpisodes int) (*FeedResult, error) {
	r.mu.RLock()
	handlers := r.feedHandlers
	r.mu.RUnlock()

	for _, h := range handlers {
		res, err := h(ctx, channel, maxEpisodes)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, nil
}

// ResolveDownloader walks the downloader chain in registration order and
// returns the first non-declined downloader, or nil.
func (r *Registry) ResolveDownloader(episode *models.Episode) contracts.Downloader {
	r.mu.RLock()
	downloaders := r.downloaders
	r.mu.RUnlock()

	for _, d := range downloaders {
		if dl := d(episode); dl != nil {
			return dl
		}
	}
	return nil
}
