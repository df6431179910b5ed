// Package backend defines the video-extraction backend contract and its
// yt-dlp subprocess implementation.
package backend

// ResultType tags a VideoTree node.
type ResultType string

const (
	ResultVideo          ResultType = "video"
	ResultURL            ResultType = "url"
	ResultURLTransparent ResultType = "url_transparent"
	ResultPlaylist       ResultType = "playlist"
	ResultMultiVideo     ResultType = "multi_video"
)

// VideoTree is one node of a recursively-resolved extraction result: a
// video, a redirect, or a playlist carrying child entries.
//
// JSON tags match the backend's wire format.
type VideoTree struct {
	Type       ResultType   `json:"_type"`
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	URL        string       `json:"url"`
	WebpageURL string       `json:"webpage_url"`
	IEKey      string       `json:"ie_key"`
	Entries    []*VideoTree `json:"entries,omitempty"`

	// Per-entry fields, mostly filled during enrichment.
	Description      string    `json:"description,omitempty"`
	Thumbnail        string    `json:"thumbnail,omitempty"`
	UploadDate       string    `json:"upload_date,omitempty"`
	ReleaseDate      string    `json:"release_date,omitempty"`
	Duration         float64   `json:"duration,omitempty"`
	Filesize         int64     `json:"filesize,omitempty"`
	Ext              string    `json:"ext,omitempty"`
	RequestedFormats []*Format `json:"requested_formats,omitempty"`

	// GUID is assigned during filtering, never present in backend output.
	GUID string `json:"-"`
}

// Format is one selected media format of an enriched entry. Merged-format
// downloads report sizes here rather than on the entry itself.
type Format struct {
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	Filesize int64  `json:"filesize"`
}

// ResultType returns the node's tag. The backend omits the tag for plain
// video nodes, so the zero value reads as ResultVideo.
func (t *VideoTree) ResultType() ResultType {
	if t.Type == "" {
		return ResultVideo
	}
	return t.Type
}

// HasPlaylist reports whether the node already carries an entry sequence.
func (t *VideoTree) HasPlaylist() bool {
	rt := t.ResultType()
	return rt == ResultPlaylist || rt == ResultMultiVideo
}
