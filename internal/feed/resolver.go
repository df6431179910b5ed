// Package feed resolves channel and playlist URLs into podcast-style feeds
// and synchronizes their episodes incrementally.
package feed

import (
	"context"
	"errors"
	"fmt"

	"podtube/internal/backend"
	"podtube/internal/parsing"
	"podtube/internal/utils/logging"
)

// ErrUnsupportedResultType marks extraction results the resolver cannot
// interpret. Fatal for that resolution, never silently coerced.
var ErrUnsupportedResultType = errors.New("unsupported extraction result type")

// maxRedirects bounds url -> url redirection chains so a misbehaving
// backend cannot spin the resolver forever.
const maxRedirects = 10

// resolveState is one state of the resolution loop.
type resolveState int

const (
	stateRedirect resolveState = iota
	statePlaylist
	stateSingleVideo
	stateError
)

// step is the pure transition function over the current extraction result.
func step(tree *backend.VideoTree) resolveState {
	switch tree.ResultType() {
	case backend.ResultPlaylist, backend.ResultMultiVideo:
		return statePlaylist
	case backend.ResultURL, backend.ResultURLTransparent:
		return stateRedirect
	case backend.ResultVideo:
		return stateSingleVideo
	default:
		return stateError
	}
}

// MetaLookup resolves optional channel metadata the backend does not
// provide, keyed by the original channel or playlist URL. Returns "" when
// nothing is found; absence is not an error.
type MetaLookup func(channelURL string) string

// Resolver walks extraction results until a concrete entry list is
// obtained and wraps it as a YoutubeFeed.
type Resolver struct {
	Backend backend.Extractor

	// CoverLookup and DescLookup are side-channel metadata lookups, both
	// optional.
	CoverLookup MetaLookup
	DescLookup  MetaLookup
}

// Resolve fetches a channel or playlist's contents.
//
// url is the native platform URL to extract; channelURL is the original
// feed-style URL the side-channel lookups are keyed by. The initial
// extraction is unprocessed, so entries are stubs: video IDs and titles
// only, no per-video details yet.
func (r *Resolver) Resolve(ctx context.Context, url, channelURL string, maxEpisodes int) (*YoutubeFeed, error) {
	tree, err := r.Backend.ExtractMetadata(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extracting %q: %w", url, err)
	}

	redirects := 0

loop:
	for {
		switch step(tree) {
		case statePlaylist:
			break loop

		case stateSingleVideo:
			logging.D(1, "resolution of %q ended on a bare video node, synthesizing a single-entry feed", url)
			tree = singletonTree(tree)
			break loop

		case stateRedirect:
			if redirects++; redirects > maxRedirects {
				return nil, fmt.Errorf("resolving %q: redirect chain exceeded %d hops", url, maxRedirects)
			}
			tree.URL = parsing.SanitizeURL(tree.URL)
			logging.D(1, "re-extracting %q to get the video list", tree.URL)
			next, err := r.Backend.ResolveEntry(ctx, tree.URL, tree.IEKey)
			if err != nil {
				return nil, fmt.Errorf("resolving entry %q: %w", tree.URL, err)
			}
			tree = next

		case stateError:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedResultType, tree.Type)
		}
	}

	var coverURL, description string
	if r.CoverLookup != nil {
		coverURL = r.CoverLookup(channelURL)
	}
	if r.DescLookup != nil {
		description = r.DescLookup(channelURL)
	}

	return NewFeed(ctx, url, coverURL, description, maxEpisodes, tree, r.Backend)
}

// singletonTree wraps a bare video node in a single-entry playlist so a
// direct video URL still yields a usable one-episode feed.
func singletonTree(video *backend.VideoTree) *backend.VideoTree {
	return &backend.VideoTree{
		Type:       backend.ResultPlaylist,
		ID:         video.ID,
		Title:      video.Title,
		WebpageURL: video.WebpageURL,
		Entries:    []*backend.VideoTree{video},
	}
}
