package service

import (
	"context"

	"github.com/umputun/rssfeeder/pkg/domain"
	"github.com/umputun/rssfeeder/pkg/repository"
	"github.com/umputun/rssfeeder/pkg/scheduler"
)

// UpdateStorage provides the scheduler and the feed updater with access to repositories
type UpdateStorage struct {
	repos *repository.Repositories
}

// NewUpdateStorage creates a new update storage over repositories
func NewUpdateStorage(repos *repository.Repositories) *UpdateStorage {
	return &UpdateStorage{repos: repos}
}

// GetFeed retrieves a feed by ID
func (s *UpdateStorage) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	return s.repos.Feed.GetFeed(ctx, id)
}

// GetUnflaggedFeeds retrieves feeds eligible for periodic updates
func (s *UpdateStorage) GetUnflaggedFeeds(ctx context.Context) ([]domain.Feed, error) {
	return s.repos.Feed.GetFeeds(ctx, repository.FeedFilter{UnflaggedOnly: true})
}

// InTransaction runs fn with writes bound to one database transaction
func (s *UpdateStorage) InTransaction(ctx context.Context, fn func(tx scheduler.Tx) error) error {
	return s.repos.InTransaction(ctx, func(tx *repository.Tx) error {
		return fn(&updateTx{tx: tx})
	})
}

// updateTx adapts transaction-bound repositories to scheduler.Tx
type updateTx struct {
	tx *repository.Tx
}

func (t *updateTx) UpdateFeedMetadata(ctx context.Context, feed *domain.Feed) error {
	return t.tx.Feed.UpdateFeedMetadata(ctx, feed)
}

func (t *updateTx) SetFeedFlagged(ctx context.Context, feedID int64, flagged bool) error {
	return t.tx.Feed.SetFeedFlagged(ctx, feedID, flagged)
}

func (t *updateTx) GetEntriesByGUIDs(ctx context.Context, feedID int64, guids []string) (map[string]domain.Entry, error) {
	return t.tx.Entry.GetEntriesByGUIDs(ctx, feedID, guids)
}

func (t *updateTx) CreateEntries(ctx context.Context, entries []domain.Entry) (int, error) {
	return t.tx.Entry.CreateEntries(ctx, entries)
}

func (t *updateTx) UpdateEntries(ctx context.Context, entries []domain.Entry) error {
	return t.tx.Entry.UpdateEntries(ctx, entries)
}

func (t *updateTx) CreateNotification(ctx context.Context, n *domain.Notification) error {
	return t.tx.Notification.CreateNotification(ctx, n)
}
