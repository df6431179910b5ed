package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"podtube/internal/backend"
	"podtube/internal/contracts"
	"podtube/internal/domain/consts"
	"podtube/internal/parsing"
	"podtube/internal/utils/logging"

	"github.com/google/uuid"
)

// CustomDownload downloads a single episode through the extraction backend
// instead of plain HTTP. One instance per download attempt; the progress
// counter belongs to the instance and is never shared.
type CustomDownload struct {
	backend        backend.Extractor
	url            string
	formatSelector string
	id             string
}

var _ contracts.Downloader = (*CustomDownload)(nil)

// New returns a downloader for one episode URL.
func New(ext backend.Extractor, url, formatSelector string) *CustomDownload {
	return &CustomDownload{
		backend:        ext,
		url:            url,
		formatSelector: formatSelector,
		id:             uuid.NewString(),
	}
}

// Retrieve performs the download to destPath, reporting progress through
// the hook. Called by the host's download task; the caller manages its own
// partial-file naming convention, so the backend is told not to append one.
//
// Returns derived headers (the backend reports an extension, not a
// content-type) and the final source URL.
func (d *CustomDownload) Retrieve(ctx context.Context, destPath string, hook contracts.ReportHook) (map[string]string, string, error) {
	adapter := &progressAdapter{reporthook: hook}

	logging.D(1, "[%s] fetching %q to %q", d.id, d.url, destPath)
	res, err := d.backend.FetchMedia(ctx, backend.FetchRequest{
		URL:            d.url,
		DestPath:       destPath,
		NoPart:         true,
		Retries:        consts.DLRetries,
		FormatSelector: d.formatSelector,
		Hook:           adapter.handle,
	})
	if err != nil {
		return nil, "", fmt.Errorf("fetching media for %q: %w", d.url, err)
	}

	headers := map[string]string{}
	if res.Ext != "" {
		if mt := parsing.MimeFromExt(res.Ext); mt != "" {
			headers["content-type"] = mt
		}
		if err := repairMergedOutput(destPath, "."+res.Ext); err != nil {
			return nil, "", err
		}
	}

	finalURL := res.URL
	if finalURL == "" {
		finalURL = d.url
	}
	return headers, finalURL, nil
}

// repairMergedOutput fixes a backend quirk: when merging multiple source
// streams it appends the extension to the requested output path, leaving
// an empty file at the requested path and the real one beside it. Detect
// that exact condition and move the real file into place.
func repairMergedOutput(destPath, dotExt string) error {
	st, err := os.Stat(destPath)
	if err != nil || st.Size() != 0 {
		// Either nothing to repair, or the caller's own existence check
		// will surface the failure.
		return nil
	}

	withExt := destPath + dotExt
	if _, err := os.Stat(withExt); err != nil {
		return nil
	}

	logging.D(1, "backend downloaded to %s instead of %s, moving",
		filepath.Base(withExt), filepath.Base(destPath))

	if err := os.Remove(destPath); err != nil {
		return fmt.Errorf("removing empty download file %q: %w", destPath, err)
	}
	if err := os.Rename(withExt, destPath); err != nil {
		return fmt.Errorf("moving %q to %q: %w", withExt, destPath, err)
	}
	return nil
}
