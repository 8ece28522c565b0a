package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/umputun/rssfeeder/pkg/domain"
)

const entryColumns = `id, feed_id, guid, state, title, content, date, author, url, comments_url, created_at, updated_at`

// guidBatchSize keeps IN lists well below the SQLite host parameter limit
const guidBatchSize = 500

// EntryRepository handles entry-related database operations
type EntryRepository struct {
	db   sqlx.ExtContext
	inTx bool
}

// entrySQL represents an entry for SQL operations
type entrySQL struct {
	ID          int64     `db:"id"`
	FeedID      int64     `db:"feed_id"`
	GUID        string    `db:"guid"`
	State       string    `db:"state"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	Date        time.Time `db:"date"`
	Author      string    `db:"author"`
	URL         string    `db:"url"`
	CommentsURL string    `db:"comments_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// EntryFilter limits GetEntries results
type EntryFilter struct {
	FeedID int64             // zero for all feeds
	State  domain.EntryState // empty for any state
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(database *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: database}
}

// GetEntry retrieves an entry by ID
func (r *EntryRepository) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	var e entrySQL
	if err := sqlx.GetContext(ctx, r.db, &e, "SELECT "+entryColumns+" FROM entries WHERE id = ?", id); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get entry %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	return toDomainEntry(&e), nil
}

// GetEntries retrieves entries matching the filter, newest first
func (r *EntryRepository) GetEntries(ctx context.Context, filter EntryFilter) ([]domain.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE 1 = 1"
	var args []any
	if filter.FeedID != 0 {
		query += " AND feed_id = ?"
		args = append(args, filter.FeedID)
	}
	if filter.State != "" {
		query += " AND state = ?"
		args = append(args, string(filter.State))
	}
	query += " ORDER BY date DESC, id DESC"

	var rows []entrySQL
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}
	return lo.Map(rows, func(e entrySQL, _ int) domain.Entry { return *toDomainEntry(&e) }), nil
}

// GetEntriesByGUIDs returns stored entries of a feed keyed by guid, unknown guids are absent
func (r *EntryRepository) GetEntriesByGUIDs(ctx context.Context, feedID int64, guids []string) (map[string]domain.Entry, error) {
	res := make(map[string]domain.Entry, len(guids))
	for _, batch := range lo.Chunk(lo.Uniq(guids), guidBatchSize) {
		query, args, err := sqlx.In("SELECT "+entryColumns+" FROM entries WHERE feed_id = ? AND guid IN (?)", feedID, batch)
		if err != nil {
			return nil, fmt.Errorf("build guid query: %w", err)
		}

		var rows []entrySQL
		if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("get entries by guid: %w", err)
		}
		for i := range rows {
			res[rows[i].GUID] = *toDomainEntry(&rows[i])
		}
	}
	return res, nil
}

// CreateEntries inserts entries, skipping guids already stored for the same feed.
// IDs and timestamps are set on inserted entries, returns the number of inserted rows.
func (r *EntryRepository) CreateEntries(ctx context.Context, entries []domain.Entry) (int, error) {
	query := `
		INSERT INTO entries (feed_id, guid, state, title, content, date, author, url, comments_url, created_at, updated_at)
		VALUES (:feed_id, :guid, :state, :title, :content, :date, :author, :url, :comments_url, :created_at, :updated_at)
		ON CONFLICT (feed_id, guid) DO NOTHING
	`
	created := 0
	for i := range entries {
		now := utcNow()
		entries[i].CreatedAt, entries[i].UpdatedAt = now, now
		if entries[i].State == "" {
			entries[i].State = domain.EntryUnread
		}

		err := withRetry(ctx, r.inTx, func() error {
			res, err := sqlx.NamedExecContext(ctx, r.db, query, toEntrySQL(&entries[i]))
			if err != nil {
				return fmt.Errorf("create entry %s: %w", entries[i].GUID, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("get rows affected: %w", err)
			}
			if n == 0 {
				return nil // already stored by a concurrent update
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("get insert id: %w", err)
			}
			entries[i].ID = id
			created++
			return nil
		})
		if err != nil {
			return created, err
		}
	}
	return created, nil
}

// UpdateEntries rewrites stored entries in place, identified by ID
func (r *EntryRepository) UpdateEntries(ctx context.Context, entries []domain.Entry) error {
	query := `
		UPDATE entries
		SET feed_id = :feed_id, state = :state, title = :title, content = :content, date = :date,
		    author = :author, url = :url, comments_url = :comments_url, updated_at = :updated_at
		WHERE id = :id
	`
	for i := range entries {
		entries[i].UpdatedAt = utcNow()
		err := withRetry(ctx, r.inTx, func() error {
			res, err := sqlx.NamedExecContext(ctx, r.db, query, toEntrySQL(&entries[i]))
			if err != nil {
				return fmt.Errorf("update entry %d: %w", entries[i].ID, err)
			}
			return checkAffected(res, "entry", entries[i].ID)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// SetEntryState marks an entry read or unread
func (r *EntryRepository) SetEntryState(ctx context.Context, id int64, state domain.EntryState) error {
	return withRetry(ctx, r.inTx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE entries SET state = ?, updated_at = ? WHERE id = ?",
			string(state), utcNow(), id)
		if err != nil {
			return fmt.Errorf("set entry state: %w", err)
		}
		return checkAffected(res, "entry", id)
	})
}

// CountEntries returns the number of entries of a feed, or of all feeds for zero feedID
func (r *EntryRepository) CountEntries(ctx context.Context, feedID int64) (int, error) {
	query, args := "SELECT COUNT(*) FROM entries", []any{}
	if feedID != 0 {
		query += " WHERE feed_id = ?"
		args = append(args, feedID)
	}
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

func toEntrySQL(e *domain.Entry) *entrySQL {
	return &entrySQL{
		ID:          e.ID,
		FeedID:      e.FeedID,
		GUID:        e.GUID,
		State:       string(e.State),
		Title:       e.Title,
		Content:     e.Content,
		Date:        e.Date.UTC(),
		Author:      e.Author,
		URL:         e.URL,
		CommentsURL: e.CommentsURL,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

// toDomainEntry converts entrySQL to domain.Entry
func toDomainEntry(e *entrySQL) *domain.Entry {
	return &domain.Entry{
		ID:          e.ID,
		FeedID:      e.FeedID,
		GUID:        e.GUID,
		State:       domain.EntryState(e.State),
		Title:       e.Title,
		Content:     e.Content,
		Date:        e.Date,
		Author:      e.Author,
		URL:         e.URL,
		CommentsURL: e.CommentsURL,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
