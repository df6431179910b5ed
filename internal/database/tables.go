package database

import (
	"database/sql"
	"fmt"
)

// initChannelsTable initializes the channels table.
func initChannelsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS channels (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        url TEXT NOT NULL UNIQUE,
        name TEXT,
        description TEXT,
        cover_url TEXT,
        max_episodes INTEGER DEFAULT 0,
        last_refresh TIMESTAMP,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_channels_url ON channels(url);
    CREATE INDEX IF NOT EXISTS idx_channels_last_refresh ON channels(last_refresh);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create channels table: %w", err)
	}
	return nil
}

// initEpisodesTable initializes the episodes table.
func initEpisodesTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS episodes (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        channel_id INTEGER REFERENCES channels(id),
        guid TEXT NOT NULL,
        title TEXT,
        link TEXT,
        description TEXT,
        description_html TEXT,
        url TEXT,
        file_size INTEGER DEFAULT 0,
        mime_type TEXT,
        published INTEGER DEFAULT 0,
        total_time INTEGER DEFAULT 0,
        download_status TEXT NOT NULL CHECK(download_status IN ('pending', 'downloading', 'completed', 'failed')),
        download_path TEXT,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        UNIQUE(channel_id, guid)
    );
    CREATE INDEX IF NOT EXISTS idx_episodes_channel ON episodes(channel_id);
    CREATE INDEX IF NOT EXISTS idx_episodes_guid ON episodes(guid);
    CREATE INDEX IF NOT EXISTS idx_episodes_download_status ON episodes(download_status);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create episodes table: %w", err)
	}
	return nil
}
