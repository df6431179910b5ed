package app

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"podtube/internal/contracts"
	"podtube/internal/models"
	"podtube/internal/registry"
	"podtube/internal/utils/logging"
)

// partialSuffix marks in-progress download files.
const partialSuffix = ".partial"

// DownloadPending downloads every pending episode of a channel into
// videoDir, continuing past per-episode failures.
func DownloadPending(ctx context.Context, s contracts.Store, reg *registry.Registry, channelURL, videoDir string) error {
	c, err := s.ChannelStore().GetChannelByURL(channelURL)
	if err != nil {
		return err
	}

	episodes, err := s.EpisodeStore().ListEpisodes(c.ID)
	if err != nil {
		return err
	}

	var errs []error
	for _, e := range episodes {
		if e.DownloadStatus != models.DLStatusPending {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := DownloadEpisode(ctx, s, reg, e, videoDir); err != nil {
			errs = append(errs, fmt.Errorf("episode %q: %w", e.GUID, err))
		}
	}
	return errors.Join(errs...)
}

// DownloadEpisode downloads a single episode through the registry's
// downloader chain. The file lands next to its final path with a partial
// suffix and is renamed once complete.
func DownloadEpisode(ctx context.Context, s contracts.Store, reg *registry.Registry, e *models.Episode, videoDir string) error {
	dl := reg.ResolveDownloader(e)
	if dl == nil {
		return fmt.Errorf("no downloader claims episode %q (url %q)", e.GUID, e.URL)
	}

	es := s.EpisodeStore()
	finalPath := filepath.Join(videoDir, episodeFilename(e))
	partialPath := finalPath + partialSuffix

	if err := es.UpdateDownloadStatus(e.ID, models.DLStatusDownloading, ""); err != nil {
		return err
	}

	logging.I("Downloading %q -> %q", e.Title, finalPath)

	hook := func(done int64, _ int, total int64) {
		logging.D(3, "progress for %q: %d/%d bytes", e.GUID, done, total)
	}

	_, _, err := dl.Retrieve(ctx, partialPath, hook)
	if err == nil {
		err = finalizeDownload(partialPath, finalPath)
	}
	if err != nil {
		if sErr := es.UpdateDownloadStatus(e.ID, models.DLStatusFailed, ""); sErr != nil {
			logging.E("Failed to mark episode %q failed: %v", e.GUID, sErr)
		}
		return err
	}

	if err := es.UpdateDownloadStatus(e.ID, models.DLStatusCompleted, finalPath); err != nil {
		return err
	}
	logging.S(0, "Downloaded %q", e.Title)
	return nil
}

// finalizeDownload verifies the partial file and moves it into place.
func finalizeDownload(partialPath, finalPath string) error {
	info, err := os.Stat(partialPath)
	if err != nil {
		return fmt.Errorf("download produced no file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("download produced an empty file at %q", partialPath)
	}
	return os.Rename(partialPath, finalPath)
}

// episodeFilename derives a filesystem-safe name for the episode, with the
// extension guessed from its MIME type.
func episodeFilename(e *models.Episode) string {
	base := e.Title
	if base == "" {
		base = e.GUID
	}
	base = sanitizeFilename(base)

	ext := ".mp4"
	if exts, err := mime.ExtensionsByType(e.MimeType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return base + ext
}

// sanitizeFilename strips path separators and other unsafe characters.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
