// Package contracts defines the interfaces layers consume from each other.
package contracts

import (
	"context"

	"podtube/internal/models"
)

// EpisodeFactory creates unsaved episodes bound to one channel. The feed
// engine only ever sees this narrow view of the store.
type EpisodeFactory interface {
	Create(fields models.EpisodeFields) *models.Episode
}

// EpisodeStore persists episodes.
type EpisodeStore interface {
	models.EpisodeSaver

	// Factory returns an EpisodeFactory scoped to the given channel.
	Factory(channelID int64) EpisodeFactory

	// GUIDs returns the set of episode GUIDs already known for a channel.
	GUIDs(channelID int64) (map[string]struct{}, error)

	GetEpisodeByGUID(guid string) (*models.Episode, error)
	ListEpisodes(channelID int64) ([]*models.Episode, error)
	UpdateDownloadStatus(episodeID int64, status models.DLStatus, path string) error
}

// ChannelStore persists channels.
type ChannelStore interface {
	AddChannel(c *models.Channel) (int64, error)
	GetChannelByURL(url string) (*models.Channel, error)
	ListChannels() ([]*models.Channel, error)
	UpdateChannelMeta(channelID int64, name, description, coverURL string) error
	SetLastRefresh(channelID int64) error
}

// Store bundles the individual stores.
type Store interface {
	ChannelStore() ChannelStore
	EpisodeStore() EpisodeStore
}

// ReportHook is the host's generic download progress callback contract:
// one monotonically non-decreasing byte count for the whole operation.
type ReportHook func(bytesDone int64, fragment int, bytesTotal int64)

// Downloader performs a custom download of one episode to a caller-chosen
// path, reporting progress through the hook. Returns derived headers
// (possibly empty) and the final source URL.
type Downloader interface {
	Retrieve(ctx context.Context, destPath string, hook ReportHook) (headers map[string]string, finalURL string, err error)
}
