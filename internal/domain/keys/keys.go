// Package keys holds Viper key constants.
package keys

// Program configuration
const (
	ConfigFile string = "config-file"
	DebugLevel string = "debug-level"
	DBPath     string = "db-path"
	VideoDir   string = "video-dir"
)

// Extension toggles
const (
	ManageChannel   string = "manage-channel"
	ManageDownloads string = "manage-downloads"
)

// Backend behavior
const (
	FormatIDs    string = "format-ids"
	CookieSource string = "cookie-source"
	YtDlpPath    string = "ytdlp-path"
)

// Channel operations
const (
	ChannelURL  string = "channel-url"
	ChannelName string = "channel-name"
	MaxEpisodes string = "max-episodes"
)
