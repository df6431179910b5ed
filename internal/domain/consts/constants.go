// Package consts holds constants shared across Podtube.
package consts

// YouTube URL construction and recognition.
const (
	YtChannelURLFmt  = "https://www.youtube.com/channel/%s"
	YtPlaylistURLFmt = "https://www.youtube.com/playlist?list=%s"

	// YtIEKey is the extractor key the backend reports for single video
	// entries in a flat channel or playlist listing.
	YtIEKey = "Youtube"
)

// Episode field defaults.
const (
	GUIDPrefix          = "yt:video:"
	FallbackMimeType    = "application/octet-stream"
	DescriptionFallback = "No description available"
)

// Download behavior.
const (
	// DLRetries is the backend's media fetch retry budget. Fetch failures
	// propagate to the caller once it is exhausted.
	DLRetries = 3

	// FallbackFormatID is appended as a hard fallback to the configured
	// format selector during metadata enrichment (MP4 360p).
	FallbackFormatID = "18"
)

// Permissions for program-created files and directories.
const (
	PermsDir  = 0o755
	PermsFile = 0o644
)
