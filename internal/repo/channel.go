// Package repo implements the SQLite-backed stores.
package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"podtube/internal/domain/consts"
	"podtube/internal/models"
	"podtube/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// ChannelStore holds a pointer to the sql.DB.
type ChannelStore struct {
	DB *sql.DB
}

// GetChannelStore returns a channel store instance with injected database.
func GetChannelStore(db *sql.DB) *ChannelStore {
	return &ChannelStore{
		DB: db,
	}
}

// AddChannel inserts a new channel, returning its ID. Re-adding an existing
// URL returns the existing row's ID.
func (cs *ChannelStore) AddChannel(c *models.Channel) (int64, error) {
	if c.URL == "" {
		return 0, errors.New("channel must have a URL")
	}

	if existing, err := cs.GetChannelByURL(c.URL); err == nil {
		logging.D(1, "channel %q already exists with ID %d", c.URL, existing.ID)
		return existing.ID, nil
	}

	now := time.Now()
	query := squirrel.
		Insert(consts.DBChannels).
		Columns(
			consts.QChanURL,
			consts.QChanName,
			consts.QChanDescription,
			consts.QChanCoverURL,
			consts.QChanMaxEpisodes,
			consts.QChanCreatedAt,
			consts.QChanUpdatedAt,
		).
		Values(
			c.URL,
			c.Name,
			c.Description,
			c.CoverURL,
			c.MaxEpisodes,
			now,
			now,
		).
		RunWith(cs.DB)

	result, err := query.Exec()
	if err != nil {
		return 0, fmt.Errorf("failed to insert channel %q: %w", c.URL, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get channel ID for %q: %w", c.URL, err)
	}

	c.ID = id
	logging.S(0, "Added channel %q with ID %d", c.URL, id)
	return id, nil
}

// GetChannelByURL fetches a channel by its subscription URL.
func (cs *ChannelStore) GetChannelByURL(url string) (*models.Channel, error) {
	query := squirrel.
		Select(channelColumns()...).
		From(consts.DBChannels).
		Where(squirrel.Eq{consts.QChanURL: url}).
		RunWith(cs.DB)

	c, err := scanChannel(query.QueryRow())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("channel with URL %q does not exist", url)
		}
		return nil, err
	}
	return c, nil
}

// ListChannels returns all subscribed channels.
func (cs *ChannelStore) ListChannels() ([]*models.Channel, error) {
	query := squirrel.
		Select(channelColumns()...).
		From(consts.DBChannels).
		OrderBy(consts.QChanID)

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := cs.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	var channels []*models.Channel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

// UpdateChannelMeta stores the metadata discovered during a refresh.
func (cs *ChannelStore) UpdateChannelMeta(channelID int64, name, description, coverURL string) error {
	query := squirrel.
		Update(consts.DBChannels).
		Set(consts.QChanName, name).
		Set(consts.QChanDescription, description).
		Set(consts.QChanCoverURL, coverURL).
		Set(consts.QChanUpdatedAt, time.Now()).
		Where(squirrel.Eq{consts.QChanID: channelID}).
		RunWith(cs.DB)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to update channel %d metadata: %w", channelID, err)
	}
	return nil
}

// SetLastRefresh marks the channel as refreshed now.
func (cs *ChannelStore) SetLastRefresh(channelID int64) error {
	now := time.Now()
	query := squirrel.
		Update(consts.DBChannels).
		Set(consts.QChanLastRefresh, now).
		Set(consts.QChanUpdatedAt, now).
		Where(squirrel.Eq{consts.QChanID: channelID}).
		RunWith(cs.DB)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to set last refresh for channel %d: %w", channelID, err)
	}
	return nil
}

// scanner matches *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func channelColumns() []string {
	return []string{
		consts.QChanID,
		consts.QChanURL,
		consts.QChanName,
		consts.QChanDescription,
		consts.QChanCoverURL,
		consts.QChanMaxEpisodes,
		consts.QChanLastRefresh,
		consts.QChanCreatedAt,
		consts.QChanUpdatedAt,
	}
}

func scanChannel(row scanner) (*models.Channel, error) {
	var (
		c           models.Channel
		name        sql.NullString
		description sql.NullString
		coverURL    sql.NullString
		lastRefresh sql.NullTime
	)

	if err := row.Scan(
		&c.ID,
		&c.URL,
		&name,
		&description,
		&coverURL,
		&c.MaxEpisodes,
		&lastRefresh,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Name = name.String
	c.Description = description.String
	c.CoverURL = coverURL.String
	if lastRefresh.Valid {
		c.LastRefresh = lastRefresh.Time
	}
	return &c, nil
}
