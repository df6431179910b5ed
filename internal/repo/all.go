package repo

import (
	"database/sql"

	"podtube/internal/contracts"
)

// Stores bundles the individual SQLite-backed stores.
type Stores struct {
	channels *ChannelStore
	episodes *EpisodeStore
}

// InitStores returns the store bundle with injected database.
func InitStores(db *sql.DB) *Stores {
	return &Stores{
		channels: GetChannelStore(db),
		episodes: GetEpisodeStore(db),
	}
}

func (s *Stores) ChannelStore() contracts.ChannelStore { return s.channels }
func (s *Stores) EpisodeStore() contracts.EpisodeStore { return s.episodes }

var _ contracts.Store = (*Stores)(nil)
