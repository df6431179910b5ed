package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"podtube/internal/contracts"
	"podtube/internal/domain/consts"
	"podtube/internal/models"
	"podtube/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// EpisodeStore holds a pointer to the sql.DB.
type EpisodeStore struct {
	DB *sql.DB
}

// GetEpisodeStore returns an episode store instance with injected database.
func GetEpisodeStore(db *sql.DB) *EpisodeStore {
	return &EpisodeStore{
		DB: db,
	}
}

// episodeFactory creates episodes bound to one channel and this store.
type episodeFactory struct {
	store     *EpisodeStore
	channelID int64
}

// Create builds an unsaved episode for the factory's channel.
func (f *episodeFactory) Create(fields models.EpisodeFields) *models.Episode {
	return models.NewEpisode(f.channelID, fields, f.store)
}

// Factory returns an episode factory scoped to the given channel.
func (es *EpisodeStore) Factory(channelID int64) contracts.EpisodeFactory {
	return &episodeFactory{store: es, channelID: channelID}
}

// SaveEpisode inserts the episode, or updates the existing row when the
// channel already holds the GUID.
func (es *EpisodeStore) SaveEpisode(e *models.Episode) (err error) {
	if e.GUID == "" {
		return errors.New("episode must have a GUID")
	}
	if e.ChannelID == 0 {
		return errors.New("episode must belong to a channel")
	}

	tx, err := es.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Rollback failed for episode %q (original error: %v): %v", e.GUID, err, rbErr)
			}
		}
	}()

	now := time.Now()

	existingID, exists, err := es.episodeExists(tx, e.ChannelID, e.GUID)
	if err != nil {
		return err
	}

	if exists {
		query := squirrel.
			Update(consts.DBEpisodes).
			Set(consts.QEpTitle, e.Title).
			Set(consts.QEpLink, e.Link).
			Set(consts.QEpDescription, e.Description).
			Set(consts.QEpDescriptionHTML, e.DescriptionHTML).
			Set(consts.QEpURL, e.URL).
			Set(consts.QEpFileSize, e.FileSize).
			Set(consts.QEpMimeType, e.MimeType).
			Set(consts.QEpPublished, e.Published).
			Set(consts.QEpTotalTime, e.TotalTime).
			Set(consts.QEpUpdatedAt, now).
			Where(squirrel.Eq{consts.QEpID: existingID}).
			RunWith(tx)

		if _, err = query.Exec(); err != nil {
			return fmt.Errorf("failed to update episode %q: %w", e.GUID, err)
		}
		e.ID = existingID
	} else {
		query := squirrel.
			Insert(consts.DBEpisodes).
			Columns(
				consts.QEpChanID,
				consts.QEpGUID,
				consts.QEpTitle,
				consts.QEpLink,
				consts.QEpDescription,
				consts.QEpDescriptionHTML,
				consts.QEpURL,
				consts.QEpFileSize,
				consts.QEpMimeType,
				consts.QEpPublished,
				consts.QEpTotalTime,
				consts.QEpDLStatus,
				consts.QEpCreatedAt,
				consts.QEpUpdatedAt,
			).
			Values(
				e.ChannelID,
				e.GUID,
				e.Title,
				e.Link,
				e.Description,
				e.DescriptionHTML,
				e.URL,
				e.FileSize,
				e.MimeType,
				e.Published,
				e.TotalTime,
				string(models.DLStatusPending),
				now,
				now,
			).
			RunWith(tx)

		var result sql.Result
		if result, err = query.Exec(); err != nil {
			return fmt.Errorf("failed to insert episode %q: %w", e.GUID, err)
		}
		if e.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get episode ID for %q: %w", e.GUID, err)
		}
		e.DownloadStatus = models.DLStatusPending
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit episode %q: %w", e.GUID, err)
	}
	return nil
}

// GUIDs returns the set of episode GUIDs already known for a channel.
func (es *EpisodeStore) GUIDs(channelID int64) (map[string]struct{}, error) {
	query := squirrel.
		Select(consts.QEpGUID).
		From(consts.DBEpisodes).
		Where(squirrel.Eq{consts.QEpChanID: channelID})

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := es.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query GUIDs for channel %d: %w", channelID, err)
	}
	defer rows.Close()

	guids := make(map[string]struct{})
	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return nil, fmt.Errorf("failed to scan GUID row: %w", err)
		}
		guids[guid] = struct{}{}
	}
	return guids, rows.Err()
}

// GetEpisodeByGUID fetches a single episode by GUID.
func (es *EpisodeStore) GetEpisodeByGUID(guid string) (*models.Episode, error) {
	query := squirrel.
		Select(episodeColumns()...).
		From(consts.DBEpisodes).
		Where(squirrel.Eq{consts.QEpGUID: guid}).
		RunWith(es.DB)

	e, err := es.scanEpisode(query.QueryRow())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("episode with GUID %q does not exist", guid)
		}
		return nil, err
	}
	return e, nil
}

// ListEpisodes returns a channel's episodes, newest first.
func (es *EpisodeStore) ListEpisodes(channelID int64) ([]*models.Episode, error) {
	query := squirrel.
		Select(episodeColumns()...).
		From(consts.DBEpisodes).
		Where(squirrel.Eq{consts.QEpChanID: channelID}).
		OrderBy(fmt.Sprintf("%s DESC", consts.QEpPublished))

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := es.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes for channel %d: %w", channelID, err)
	}
	defer rows.Close()

	var episodes []*models.Episode
	for rows.Next() {
		e, err := es.scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan episode row: %w", err)
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

// UpdateDownloadStatus records an episode's download state and file path.
func (es *EpisodeStore) UpdateDownloadStatus(episodeID int64, status models.DLStatus, path string) error {
	query := squirrel.
		Update(consts.DBEpisodes).
		Set(consts.QEpDLStatus, string(status)).
		Set(consts.QEpDLPath, path).
		Set(consts.QEpUpdatedAt, time.Now()).
		Where(squirrel.Eq{consts.QEpID: episodeID}).
		RunWith(es.DB)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to update download status for episode %d: %w", episodeID, err)
	}
	return nil
}

// episodeExists checks for an existing (channel, GUID) row inside tx.
func (es *EpisodeStore) episodeExists(tx *sql.Tx, channelID int64, guid string) (int64, bool, error) {
	var id int64
	query := squirrel.
		Select(consts.QEpID).
		From(consts.DBEpisodes).
		Where(squirrel.Eq{consts.QEpChanID: channelID}).
		Where(squirrel.Eq{consts.QEpGUID: guid}).
		RunWith(tx)

	if err := query.QueryRow().Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to check episode %q: %w", guid, err)
	}
	return id, true, nil
}

func episodeColumns() []string {
	return []string{
		consts.QEpID,
		consts.QEpChanID,
		consts.QEpGUID,
		consts.QEpTitle,
		consts.QEpLink,
		consts.QEpDescription,
		consts.QEpDescriptionHTML,
		consts.QEpURL,
		consts.QEpFileSize,
		consts.QEpMimeType,
		consts.QEpPublished,
		consts.QEpTotalTime,
		consts.QEpDLStatus,
		consts.QEpDLPath,
		consts.QEpCreatedAt,
		consts.QEpUpdatedAt,
	}
}

func (es *EpisodeStore) scanEpisode(row scanner) (*models.Episode, error) {
	var (
		e               models.Episode
		title           sql.NullString
		link            sql.NullString
		description     sql.NullString
		descriptionHTML sql.NullString
		url             sql.NullString
		mimeType        sql.NullString
		status          sql.NullString
		dlPath          sql.NullString
	)

	if err := row.Scan(
		&e.ID,
		&e.ChannelID,
		&e.GUID,
		&title,
		&link,
		&description,
		&descriptionHTML,
		&url,
		&e.FileSize,
		&mimeType,
		&e.Published,
		&e.TotalTime,
		&status,
		&dlPath,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Title = title.String
	e.Link = link.String
	e.Description = description.String
	e.DescriptionHTML = descriptionHTML.String
	e.URL = url.String
	e.MimeType = mimeType.String
	e.DownloadStatus = models.DLStatus(status.String)
	e.DownloadPath = dlPath.String
	e.Bind(es)
	return &e, nil
}
