// Package models holds structs for modelling data, e.g. Channel and Episode data.
package models

import (
	"time"
)

// Channel is a subscribed channel or playlist, keyed by its feed-style URL.
type Channel struct {
	ID          int64     `db:"id"`
	URL         string    `db:"url"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CoverURL    string    `db:"cover_url"`
	MaxEpisodes int       `db:"max_episodes"`
	LastRefresh time.Time `db:"last_refresh"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
