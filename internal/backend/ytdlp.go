package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"podtube/internal/domain/consts"
	"podtube/internal/utils/logging"
)

const defaultYtDlpPath = "yt-dlp"

// progressTemplate makes the subprocess emit machine-readable progress
// lines carrying the fields the progress adapter needs.
const progressTemplate = "download:PT|%(progress.status)s|%(progress.downloaded_bytes)s|%(progress.total_bytes)s|%(progress.total_bytes_estimate)s"

// YtDlp drives the yt-dlp executable as the extraction backend.
type YtDlp struct {
	// Path to the executable. Defaults to "yt-dlp".
	Path string

	// CacheDir is handed to the subprocess. Little used by the backend
	// itself but set anyway.
	CacheDir string

	// CookieFile is an optional Netscape-format cookie file.
	CookieFile string

	// FormatSelector used for metadata enrichment.
	FormatSelector string
}

// NewYtDlp returns a yt-dlp backend writing
// cache data under cacheDir.
func NewYtDlp(cacheDir string) *YtDlp {
	return &YtDlp{
		Path:     defaultYtDlpPath,
		CacheDir: cacheDir,
	}
}

func (y *YtDlp) path() string {
	if y.Path == "" {
		return defaultYtDlpPath
	}
	return y.Path
}

// baseArgs are shared by every subprocess invocation.
func (y *YtDlp) baseArgs() []string {
	args := []string{"--no-warnings", "--no-color"}
	if y.CacheDir != "" {
		args = append(args, "--cache-dir", y.CacheDir)
	}
	if y.CookieFile != "" {
		args = append(args, "--cookies", y.CookieFile)
	}
	return args
}

// checkInstalled verifies the executable is reachable.
func (y *YtDlp) checkInstalled() error {
	if _, err := exec.LookPath(y.path()); err != nil {
		return fmt.Errorf("%s command not found: %w", y.path(), err)
	}
	return nil
}

// runJSON runs the subprocess and returns its stdout.
func (y *YtDlp) runJSON(ctx context.Context, args []string) ([]byte, error) {
	if err := y.checkInstalled(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, y.path(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.D(2, "executing: %s %s", y.path(), strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", y.path(), err, lastLine(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// ExtractMetadata resolves a URL into an unprocessed VideoTree. Playlist
// entries come back flat: video stubs, not full metadata.
func (y *YtDlp) ExtractMetadata(ctx context.Context, url string) (*VideoTree, error) {
	args := append(y.baseArgs(), "-J", "--flat-playlist", url)

	out, err := y.runJSON(ctx, args)
	if err != nil {
		return nil, err
	}

	tree := &VideoTree{}
	if err := json.Unmarshal(out, tree); err != nil {
		return nil, fmt.Errorf("decoding extraction result for %q: %w", url, err)
	}
	return tree, nil
}

// ResolveEntry re-extracts a redirecting node with an extractor hint.
func (y *YtDlp) ResolveEntry(ctx context.Context, url, ieKey string) (*VideoTree, error) {
	args := append(y.baseArgs(), "-J", "--flat-playlist")
	if ieKey != "" {
		args = append(args, "--use-extractors", ieKey)
	}
	args = append(args, url)

	out, err := y.runJSON(ctx, args)
	if err != nil {
		return nil, err
	}

	tree := &VideoTree{}
	if err := json.Unmarshal(out, tree); err != nil {
		return nil, fmt.Errorf("decoding extraction result for %q: %w", url, err)
	}
	return tree, nil
}

// Entries returns a lazy source over a resolved playlist node.
//
// When the node already carries a materialized entry list it is served
// from memory. Otherwise a lazy-playlist subprocess streams entries one
// JSON line at a time, and halting the source kills the subprocess before
// it fetches further pages.
func (y *YtDlp) Entries(ctx context.Context, tree *VideoTree) (EntrySource, error) {
	if !tree.HasPlaylist() {
		return nil, fmt.Errorf("cannot enumerate entries of a %q node", tree.ResultType())
	}
	if tree.Entries != nil {
		return NewSliceSource(tree.Entries), nil
	}

	u := tree.WebpageURL
	if u == "" {
		u = tree.URL
	}
	if u == "" {
		return nil, fmt.Errorf("playlist node has no URL to stream entries from")
	}

	args := append(y.baseArgs(), "--flat-playlist", "--lazy-playlist", "--skip-download", "--print-json", u)
	return newStreamSource(ctx, y.path(), args)
}

// RefreshMetadata enriches entries in place with full video details, one
// subprocess invocation for the whole batch.
func (y *YtDlp) RefreshMetadata(ctx context.Context, entries []*VideoTree) error {
	if len(entries) == 0 {
		return nil
	}

	selector := y.FormatSelector
	if selector == "" {
		selector = consts.FallbackFormatID
	} else if !strings.HasSuffix(selector, "/"+consts.FallbackFormatID) {
		selector += "/" + consts.FallbackFormatID
	}

	args := append(y.baseArgs(), "--skip-download", "--print-json", "--format", selector)
	for _, e := range entries {
		u := e.URL
		if u == "" {
			u = e.WebpageURL
		}
		if u == "" {
			logging.D(1, "skipping enrichment for entry %q with no URL", e.ID)
			continue
		}
		args = append(args, u)
	}

	out, err := y.runJSON(ctx, args)
	if err != nil {
		return err
	}

	byID := make(map[string]*VideoTree, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		full := &VideoTree{}
		if err := json.Unmarshal(line, full); err != nil {
			logging.E("decoding enriched entry: %v", err)
			continue
		}
		dst, ok := byID[full.ID]
		if !ok {
			logging.D(2, "enriched entry %q not in batch, ignoring", full.ID)
			continue
		}
		mergeEnrichment(dst, full)
	}
	return scanner.Err()
}

// mergeEnrichment copies full-detail fields onto a flat entry stub.
func mergeEnrichment(dst, src *VideoTree) {
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.WebpageURL != "" {
		dst.WebpageURL = src.WebpageURL
	}
	dst.Description = src.Description
	dst.Thumbnail = src.Thumbnail
	dst.UploadDate = src.UploadDate
	dst.ReleaseDate = src.ReleaseDate
	dst.Duration = src.Duration
	dst.Filesize = src.Filesize
	dst.Ext = src.Ext
	dst.RequestedFormats = src.RequestedFormats
}

// FetchMedia downloads media to the requested path, emitting progress
// events parsed from the subprocess's progress lines.
func (y *YtDlp) FetchMedia(ctx context.Context, req FetchRequest) (*MediaResult, error) {
	if err := y.checkInstalled(); err != nil {
		return nil, err
	}

	args := append(y.baseArgs(),
		"--newline",
		"--progress-template", progressTemplate,
		"--print", "after_move:%(filepath)s",
		"--print", "after_move:%(webpage_url)s",
		"-o", req.DestPath,
	)
	if req.NoPart {
		args = append(args, "--no-part")
	}
	if req.Retries > 0 {
		args = append(args, "--retries", strconv.Itoa(req.Retries))
	}
	if req.FormatSelector != "" {
		args = append(args, "--format", req.FormatSelector)
	}
	args = append(args, req.URL)

	cmd := exec.CommandContext(ctx, y.path(), args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logging.D(1, "executing download command: %s", cmd.String())
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", y.path(), err)
	}

	finalPath, finalURL, scanErr := consumeFetchOutput(stdout, req.Hook)

	if err := cmd.Wait(); err != nil {
		if req.Hook != nil {
			req.Hook(ProgressEvent{Status: StatusError, Err: err})
		}
		return nil, fmt.Errorf("%s failed for %q: %w: %s", y.path(), req.URL, err, lastLine(stderr.String()))
	}
	if scanErr != nil {
		return nil, fmt.Errorf("reading %s output for %q: %w", y.path(), req.URL, scanErr)
	}

	res := &MediaResult{URL: finalURL}
	if finalPath != "" {
		res.Ext = strings.TrimPrefix(filepath.Ext(finalPath), ".")
	}
	return res, nil
}

// consumeFetchOutput scans a media fetch's stdout, routing progress lines
// to the hook and capturing the after_move prints: the finished file's
// absolute path and its webpage URL. A scan error means the output was
// truncated, never a normal end of stream.
func consumeFetchOutput(r io.Reader, hook ProgressHook) (finalPath, finalURL string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if ev, ok := parseProgressLine(line); ok {
			if hook != nil {
				hook(ev)
			}
			continue
		}
		switch {
		case filepath.IsAbs(line):
			finalPath = line
		case strings.HasPrefix(line, "http://"), strings.HasPrefix(line, "https://"):
			finalURL = line
		}
	}
	return finalPath, finalURL, scanner.Err()
}

// parseProgressLine decodes one progress-template line into an event.
func parseProgressLine(line string) (ProgressEvent, bool) {
	if !strings.HasPrefix(line, "PT|") {
		return ProgressEvent{}, false
	}

	parts := strings.Split(line, "|")
	if len(parts) != 5 {
		return ProgressEvent{}, false
	}

	ev := ProgressEvent{
		DownloadedBytes:    parseByteCount(parts[2]),
		TotalBytes:         parseByteCount(parts[3]),
		TotalBytesEstimate: parseByteCount(parts[4]),
	}

	switch parts[1] {
	case "downloading":
		ev.Status = StatusDownloading
	case "finished":
		ev.Status = StatusFinished
	case "error":
		ev.Status = StatusError
		ev.Err = fmt.Errorf("backend reported a download error")
	default:
		ev.Status = StatusUnknown
	}
	return ev, true
}

// parseByteCount parses a numeric progress field. The subprocess reports
// unknown values as "NA" or "null", and may emit floats.
func parseByteCount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "NA" || s == "null" || s == "None" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

// lastLine returns the final non-empty line of subprocess error output.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
