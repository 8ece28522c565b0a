package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/rssfeeder/pkg/domain"
)

const feedColumns = `id, link, nickname, owner, following, flagged, title, subtitle, description, language,
	copyright, site_url, ttl, logo_url, pub_date, created_at, updated_at`

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db   sqlx.ExtContext
	inTx bool
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID          int64      `db:"id"`
	Link        string     `db:"link"`
	Nickname    string     `db:"nickname"`
	Owner       string     `db:"owner"`
	Following   bool       `db:"following"`
	Flagged     bool       `db:"flagged"`
	Title       string     `db:"title"`
	Subtitle    string     `db:"subtitle"`
	Description string     `db:"description"`
	Language    string     `db:"language"`
	Copyright   string     `db:"copyright"`
	SiteURL     string     `db:"site_url"`
	TTL         int        `db:"ttl"`
	LogoURL     string     `db:"logo_url"`
	PubDate     *time.Time `db:"pub_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// FeedFilter limits GetFeeds results
type FeedFilter struct {
	Owner         string // empty for all owners
	UnflaggedOnly bool
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a new feed, (link, owner) must be unique
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	now := utcNow()
	feed.CreatedAt, feed.UpdatedAt = now, now
	sqlFeed := toFeedSQL(feed)

	query := `
		INSERT INTO feeds (link, nickname, owner, following, flagged, title, subtitle, description, language,
			copyright, site_url, ttl, logo_url, pub_date, created_at, updated_at)
		VALUES (:link, :nickname, :owner, :following, :flagged, :title, :subtitle, :description, :language,
			:copyright, :site_url, :ttl, :logo_url, :pub_date, :created_at, :updated_at)
	`
	return withRetry(ctx, r.inTx, func() error {
		result, err := sqlx.NamedExecContext(ctx, r.db, query, sqlFeed)
		if err != nil {
			if isUniqueError(err) {
				return fmt.Errorf("create feed %s for %s: %w", feed.Link, feed.Owner, domain.ErrDuplicate)
			}
			return fmt.Errorf("create feed: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		feed.ID = id
		return nil
	})
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var sqlFeed feedSQL
	err := sqlx.GetContext(ctx, r.db, &sqlFeed, "SELECT "+feedColumns+" FROM feeds WHERE id = ?", id)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get feed %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get feed %d: %w", id, err)
	}
	return toDomainFeed(&sqlFeed), nil
}

// GetFeeds retrieves feeds with optional filtering, ordered by id
func (r *FeedRepository) GetFeeds(ctx context.Context, filter FeedFilter) ([]domain.Feed, error) {
	query := "SELECT " + feedColumns + " FROM feeds WHERE 1 = 1"
	var args []any
	if filter.Owner != "" {
		query += " AND owner = ?"
		args = append(args, filter.Owner)
	}
	if filter.UnflaggedOnly {
		query += " AND flagged = 0"
	}
	query += " ORDER BY id"

	var sqlFeeds []feedSQL
	if err := sqlx.SelectContext(ctx, r.db, &sqlFeeds, query, args...); err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}

	feeds := make([]domain.Feed, len(sqlFeeds))
	for i := range sqlFeeds {
		feeds[i] = *toDomainFeed(&sqlFeeds[i])
	}
	return feeds, nil
}

// UpdateFeedMetadata stores link and document metadata after a successful fetch.
// Caller-owned fields (nickname, owner, following, flagged) are not touched.
func (r *FeedRepository) UpdateFeedMetadata(ctx context.Context, feed *domain.Feed) error {
	feed.UpdatedAt = utcNow()
	query := `
		UPDATE feeds
		SET link = :link, title = :title, subtitle = :subtitle, description = :description,
		    language = :language, copyright = :copyright, site_url = :site_url, ttl = :ttl,
		    logo_url = :logo_url, pub_date = :pub_date, updated_at = :updated_at
		WHERE id = :id
	`
	return withRetry(ctx, r.inTx, func() error {
		res, err := sqlx.NamedExecContext(ctx, r.db, query, toFeedSQL(feed))
		if err != nil {
			if isUniqueError(err) {
				return fmt.Errorf("update feed %d link to %s: %w", feed.ID, feed.Link, domain.ErrDuplicate)
			}
			return fmt.Errorf("update feed metadata: %w", err)
		}
		return checkAffected(res, "feed", feed.ID)
	})
}

// UpdateFeedSettings stores caller-editable fields: nickname, link, following and flagged
func (r *FeedRepository) UpdateFeedSettings(ctx context.Context, feed *domain.Feed) error {
	feed.UpdatedAt = utcNow()
	query := `
		UPDATE feeds
		SET nickname = :nickname, link = :link, following = :following, flagged = :flagged,
		    updated_at = :updated_at
		WHERE id = :id
	`
	return withRetry(ctx, r.inTx, func() error {
		res, err := sqlx.NamedExecContext(ctx, r.db, query, toFeedSQL(feed))
		if err != nil {
			if isUniqueError(err) {
				return fmt.Errorf("update feed %d link to %s: %w", feed.ID, feed.Link, domain.ErrDuplicate)
			}
			return fmt.Errorf("update feed settings: %w", err)
		}
		return checkAffected(res, "feed", feed.ID)
	})
}

// SetFeedFlagged sets or resets the flagged state of a feed
func (r *FeedRepository) SetFeedFlagged(ctx context.Context, feedID int64, flagged bool) error {
	return withRetry(ctx, r.inTx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE feeds SET flagged = ?, updated_at = ? WHERE id = ?",
			flagged, utcNow(), feedID)
		if err != nil {
			return fmt.Errorf("set feed flagged: %w", err)
		}
		return checkAffected(res, "feed", feedID)
	})
}

// DeleteFeed removes a feed with all its entries and notifications
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	return withRetry(ctx, r.inTx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete feed: %w", err)
		}
		return checkAffected(res, "feed", id)
	})
}

func toFeedSQL(feed *domain.Feed) *feedSQL {
	res := &feedSQL{
		ID:          feed.ID,
		Link:        feed.Link,
		Nickname:    feed.Nickname,
		Owner:       feed.Owner,
		Following:   feed.Following,
		Flagged:     feed.Flagged,
		Title:       feed.Title,
		Subtitle:    feed.Subtitle,
		Description: feed.Description,
		Language:    feed.Language,
		Copyright:   feed.Copyright,
		SiteURL:     feed.SiteURL,
		TTL:         feed.TTL,
		LogoURL:     feed.LogoURL,
		CreatedAt:   feed.CreatedAt.UTC(),
		UpdatedAt:   feed.UpdatedAt.UTC(),
	}
	if feed.PubDate != nil {
		pd := feed.PubDate.UTC()
		res.PubDate = &pd
	}
	return res
}

// toDomainFeed converts feedSQL to domain.Feed
func toDomainFeed(sqlFeed *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:          sqlFeed.ID,
		Link:        sqlFeed.Link,
		Nickname:    sqlFeed.Nickname,
		Owner:       sqlFeed.Owner,
		Following:   sqlFeed.Following,
		Flagged:     sqlFeed.Flagged,
		Title:       sqlFeed.Title,
		Subtitle:    sqlFeed.Subtitle,
		Description: sqlFeed.Description,
		Language:    sqlFeed.Language,
		Copyright:   sqlFeed.Copyright,
		SiteURL:     sqlFeed.SiteURL,
		TTL:         sqlFeed.TTL,
		LogoURL:     sqlFeed.LogoURL,
		PubDate:     sqlFeed.PubDate,
		CreatedAt:   sqlFeed.CreatedAt,
		UpdatedAt:   sqlFeed.UpdatedAt,
	}
}
