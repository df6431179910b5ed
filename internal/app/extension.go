// Package app wires the backend, scraper, stores and registry together
// and runs the refresh and download flows.
package app

import (
	"context"
	"fmt"

	"podtube/internal/backend"
	"podtube/internal/contracts"
	"podtube/internal/domain/consts"
	"podtube/internal/domain/regex"
	"podtube/internal/download"
	"podtube/internal/feed"
	"podtube/internal/models"
	"podtube/internal/registry"
	"podtube/internal/scraper"
	"podtube/internal/utils/logging"
)

// Extension claims Youtube channels and videos in the registry's handler
// chains: feed-style channel URLs are translated and resolved through the
// extraction backend, and watch URLs are downloaded natively.
type Extension struct {
	backend  backend.Extractor
	resolver *feed.Resolver

	// formatSelector is resolved lazily so flag and config values parsed
	// after construction still apply.
	formatSelector func() string
}

// NewExtension returns the extension with its side-channel metadata lookups
// wired to the scraper.
func NewExtension(ext backend.Extractor, s *scraper.Scraper, formatSelector func() string) *Extension {
	return &Extension{
		backend: ext,
		resolver: &feed.Resolver{
			Backend:     ext,
			CoverLookup: s.CoverURL,
			DescLookup:  s.ChannelDescription,
		},
		formatSelector: formatSelector,
	}
}

// Register hooks the extension into the registry's chains. Either side can
// be disabled independently.
func (x *Extension) Register(reg *registry.Registry, manageChannels, manageDownloads bool) {
	if manageChannels {
		reg.RegisterFeedHandler(x.FetchChannel)
	}
	if manageDownloads {
		reg.RegisterDownloader(x.ResolveDownloader)
	}
}

// FetchChannel handles feed-style Youtube channel and playlist URLs,
// translating them to their native page URLs and resolving the contents.
// Unrecognized URLs are declined with a nil result.
func (x *Extension) FetchChannel(ctx context.Context, channel *models.Channel, maxEpisodes int) (*registry.FeedResult, error) {
	nativeURL, ok := translateFeedURL(channel.URL)
	if !ok {
		logging.D(2, "URL %q is not a Youtube feed URL, declining", channel.URL)
		return nil, nil
	}

	f, err := x.resolver.Resolve(ctx, nativeURL, channel.URL, maxEpisodes)
	if err != nil {
		return nil, fmt.Errorf("fetching channel %q: %w", channel.URL, err)
	}

	return &registry.FeedResult{
		Status: registry.StatusUpdated,
		Feed:   f,
	}, nil
}

// ResolveDownloader claims episodes whose media URL is a Youtube watch
// URL. Episodes pointing elsewhere are declined with nil.
func (x *Extension) ResolveDownloader(episode *models.Episode) contracts.Downloader {
	url := episode.URL
	if !regex.WatchURLCompile().MatchString(url) {
		url = episode.Link
		if !regex.WatchURLCompile().MatchString(url) {
			return nil
		}
	}
	return download.New(x.backend, url, x.formatSelector())
}

// translateFeedURL converts a feed-style Youtube URL to the native channel
// or playlist page URL.
func translateFeedURL(url string) (string, bool) {
	if m := regex.FeedChannelCompile().FindStringSubmatch(url); m != nil {
		return fmt.Sprintf(consts.YtChannelURLFmt, m[1]), true
	}
	if m := regex.FeedPlaylistCompile().FindStringSubmatch(url); m != nil {
		return fmt.Sprintf(consts.YtPlaylistURLFmt, m[1]), true
	}
	return "", false
}
