package consts

// Database tables.
const (
	DBChannels = "channels"
	DBEpisodes = "episodes"
)

// Channel table columns.
const (
	QChanID          = "id"
	QChanURL         = "url"
	QChanName        = "name"
	QChanDescription = "description"
	QChanCoverURL    = "cover_url"
	QChanMaxEpisodes = "max_episodes"
	QChanLastRefresh = "last_refresh"
	QChanCreatedAt   = "created_at"
	QChanUpdatedAt   = "updated_at"
)

// Episode table columns.
const (
	QEpID              = "id"
	QEpChanID          = "channel_id"
	QEpGUID            = "guid"
	QEpTitle           = "title"
	QEpLink            = "link"
	QEpDescription     = "description"
	QEpDescriptionHTML = "description_html"
	QEpURL             = "url"
	QEpFileSize        = "file_size"
	QEpMimeType        = "mime_type"
	QEpPublished       = "published"
	QEpTotalTime       = "total_time"
	QEpDLStatus        = "download_status"
	QEpDLPath          = "download_path"
	QEpCreatedAt       = "created_at"
	QEpUpdatedAt       = "updated_at"
)
