package feed

import (
	"context"
	"fmt"

	"podtube/internal/backend"
	"podtube/internal/contracts"
	"podtube/internal/domain/consts"
	"podtube/internal/models"
	"podtube/internal/parsing"
	"podtube/internal/utils/logging"
)

// YoutubeFeed presents a resolved channel or playlist as a podcast feed.
//
// One instance exists per refresh; entries are mutated in place during
// GetNewEpisodes and the feed is discarded once the sync completes.
type YoutubeFeed struct {
	url         string
	coverURL    string
	description string
	maxEpisodes int
	tree        *backend.VideoTree
	entries     []*backend.VideoTree
	backend     backend.Extractor
}

// NewFeed builds a feed around a resolved entry tree, running the raw
// entry sequence through the filter/dedup engine.
func NewFeed(ctx context.Context, url, coverURL, description string, maxEpisodes int, tree *backend.VideoTree, ext backend.Extractor) (*YoutubeFeed, error) {
	src, err := ext.Entries(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("opening entry sequence for %q: %w", url, err)
	}

	entries, err := filterEntries(src, maxEpisodes)
	if err != nil {
		return nil, err
	}

	return &YoutubeFeed{
		url:         url,
		coverURL:    coverURL,
		description: description,
		maxEpisodes: maxEpisodes,
		tree:        tree,
		entries:     entries,
		backend:     ext,
	}, nil
}

// Title returns the feed's display title.
func (f *YoutubeFeed) Title() string {
	switch {
	case f.tree.Title != "":
		return f.tree.Title + " (Youtube)"
	case f.tree.ID != "":
		return f.tree.ID + " (Youtube)"
	default:
		return f.url + " (Youtube)"
	}
}

// Link returns the feed's webpage URL.
func (f *YoutubeFeed) Link() string {
	return f.tree.WebpageURL
}

// Description returns the channel description from the side-channel
// lookup; the backend does not provide one.
func (f *YoutubeFeed) Description() string {
	return f.description
}

// CoverURL returns the cover image URL from the side-channel lookup; the
// backend does not provide one.
func (f *YoutubeFeed) CoverURL() string {
	return f.coverURL
}

// GetNewEpisodes materializes episodes for entries not in knownGUIDs.
//
// Returns the new episodes in feed order plus the GUID set of every
// trimmed entry, new or not, which the caller supplies back on the next
// incremental refresh. Per-video enrichment is expensive, so only the
// genuinely new entries are enriched, in a single batched call.
func (f *YoutubeFeed) GetNewEpisodes(ctx context.Context, factory contracts.EpisodeFactory, knownGUIDs map[string]struct{}) ([]*models.Episode, map[string]struct{}, error) {
	// Trim again here in case the cap changed since resolution.
	entries := f.entries
	if f.maxEpisodes > 0 && len(entries) > f.maxEpisodes {
		entries = entries[:f.maxEpisodes]
	}

	allGUIDs := make(map[string]struct{}, len(entries))
	newEntries := make([]*backend.VideoTree, 0, len(entries))
	for _, e := range entries {
		allGUIDs[e.GUID] = struct{}{}
		if _, known := knownGUIDs[e.GUID]; !known {
			newEntries = append(newEntries, e)
		}
	}
	logging.D(1, "%d/%d new entries for %q", len(newEntries), len(allGUIDs), f.url)

	f.entries = newEntries

	if len(newEntries) > 0 {
		// Enrichment failure is not fatal: episodes are built from
		// whatever the flat listing already carried.
		if err := f.backend.RefreshMetadata(ctx, newEntries); err != nil {
			logging.E("refreshing entries for %q: %v", f.url, err)
		}
	}

	episodes := make([]*models.Episode, 0, len(newEntries))
	for _, en := range newEntries {
		ep := factory.Create(episodeFields(en))
		if err := ep.Save(); err != nil {
			return nil, nil, fmt.Errorf("saving episode %q: %w", en.GUID, err)
		}
		episodes = append(episodes, ep)
	}

	return episodes, allGUIDs, nil
}

// episodeFields derives the host episode fields from an entry.
func episodeFields(en *backend.VideoTree) models.EpisodeFields {
	guid := en.GUID
	if guid == "" {
		guid = parsing.GUID(en.ID)
	}

	description := StripTags(en.Description)
	if description == "" {
		description = consts.DescriptionFallback
	}

	mimeType := parsing.MimeFromExt(en.Ext)
	if mimeType == "" {
		mimeType = consts.FallbackMimeType
	}

	filesize := en.Filesize
	if filesize == 0 {
		for _, fm := range en.RequestedFormats {
			filesize += fm.Filesize
		}
	}

	published, err := parsing.ParseUploadDate(en.UploadDate)
	if err != nil {
		logging.W("bad upload date on entry %q: %v", guid, err)
	}
	if published == 0 {
		published = parsing.ParseReleaseDate(en.ReleaseDate)
	}

	title := en.Title
	if title == "" {
		title = guid
	}

	return models.EpisodeFields{
		Title:           title,
		Link:            en.WebpageURL,
		Description:     description,
		DescriptionHTML: htmlDescription(en.Thumbnail, description),
		URL:             en.WebpageURL,
		FileSize:        filesize,
		MimeType:        mimeType,
		GUID:            guid,
		Published:       published,
		TotalTime:       int(en.Duration),
	}
}
