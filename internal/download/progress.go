// Package download orchestrates single-episode media downloads through the
// extraction backend.
package download

import (
	"podtube/internal/backend"
	"podtube/internal/contracts"
	"podtube/internal/utils/logging"
)

// progressAdapter converts backend-native progress events into the host's
// (bytesDone, fragment, bytesTotal) callback contract.
//
// The backend may split one logical download into several physical
// fragments (separate audio/video streams, format fallbacks) whose byte
// counts each restart from zero. prevBytes accumulates finished fragments
// so the reported count stays monotonically non-decreasing across the
// whole operation.
type progressAdapter struct {
	reporthook contracts.ReportHook
	prevBytes  int64
}

func (p *progressAdapter) handle(ev backend.ProgressEvent) {
	switch ev.Status {
	case backend.StatusDownloading:
		if p.reporthook == nil {
			return
		}
		total := ev.TotalBytes
		if total == 0 {
			total = ev.TotalBytesEstimate
		}
		p.reporthook(p.prevBytes+ev.DownloadedBytes, 1, p.prevBytes+total)

	case backend.StatusFinished:
		p.prevBytes += ev.DownloadedBytes
		if p.reporthook != nil {
			p.reporthook(p.prevBytes, 1, p.prevBytes)
		}

	case backend.StatusError:
		// The backend decides whether the error aborts the download.
		logging.E("download progress hook error: %v", ev.Err)

	default:
		logging.D(2, "unknown download progress event: %+v", ev)
	}
}
