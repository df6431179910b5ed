package models

import (
	"errors"
	"time"
)

// DLStatus is an episode's download state.
type DLStatus string

const (
	DLStatusPending     DLStatus = "pending"
	DLStatusDownloading DLStatus = "downloading"
	DLStatusCompleted   DLStatus = "completed"
	DLStatusFailed      DLStatus = "failed"
)

// EpisodeFields carries the derived per-episode fields the feed engine
// produces; the store materializes them into a persisted Episode.
type EpisodeFields struct {
	Title           string
	Link            string
	Description     string
	DescriptionHTML string
	URL             string
	FileSize        int64
	MimeType        string
	GUID            string
	Published       int64 // Unix seconds, 0 if unknown
	TotalTime       int   // seconds, 0 if unknown
}

// EpisodeSaver persists episodes. Implemented by the episode store, which
// binds itself to the episodes it creates.
type EpisodeSaver interface {
	SaveEpisode(e *Episode) error
}

// Episode is one feed episode.
//
// Matches the order of the DB table, do not alter.
type Episode struct {
	ID              int64     `json:"id" db:"id"`
	ChannelID       int64     `json:"channel_id" db:"channel_id"`
	GUID            string    `json:"guid" db:"guid"`
	Title           string    `json:"title" db:"title"`
	Link            string    `json:"link" db:"link"`
	Description     string    `json:"description" db:"description"`
	DescriptionHTML string    `json:"description_html" db:"description_html"`
	URL             string    `json:"url" db:"url"`
	FileSize        int64     `json:"file_size" db:"file_size"`
	MimeType        string    `json:"mime_type" db:"mime_type"`
	Published       int64     `json:"published" db:"published"`
	TotalTime       int       `json:"total_time" db:"total_time"`
	DownloadStatus  DLStatus  `json:"download_status" db:"download_status"`
	DownloadPath    string    `json:"download_path" db:"download_path"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	saver EpisodeSaver
}

// NewEpisode builds an unsaved episode for a channel from derived fields.
func NewEpisode(channelID int64, f EpisodeFields, saver EpisodeSaver) *Episode {
	return &Episode{
		ChannelID:       channelID,
		GUID:            f.GUID,
		Title:           f.Title,
		Link:            f.Link,
		Description:     f.Description,
		DescriptionHTML: f.DescriptionHTML,
		URL:             f.URL,
		FileSize:        f.FileSize,
		MimeType:        f.MimeType,
		Published:       f.Published,
		TotalTime:       f.TotalTime,
		DownloadStatus:  DLStatusPending,
		saver:           saver,
	}
}

// Bind attaches the episode to a store. Used when rehydrating episodes
// from persistence.
func (e *Episode) Bind(saver EpisodeSaver) {
	e.saver = saver
}

// Save persists the episode through its owning store.
func (e *Episode) Save() error {
	if e.saver == nil {
		return errors.New("episode is not bound to a store")
	}
	return e.saver.SaveEpisode(e)
}
