package server

import (
	"context"

	"github.com/umputun/rssfeeder/pkg/domain"
	"github.com/umputun/rssfeeder/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Store interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// GetFeeds returns feeds of the owner, all feeds if owner is empty
func (r *RepositoryAdapter) GetFeeds(ctx context.Context, owner string) ([]domain.Feed, error) {
	return r.repos.Feed.GetFeeds(ctx, repository.FeedFilter{Owner: owner})
}

// GetFeed returns a feed by id
func (r *RepositoryAdapter) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	return r.repos.Feed.GetFeed(ctx, id)
}

// CreateFeed stores a new feed
func (r *RepositoryAdapter) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	return r.repos.Feed.CreateFeed(ctx, feed)
}

// UpdateFeedSettings stores caller-editable feed fields
func (r *RepositoryAdapter) UpdateFeedSettings(ctx context.Context, feed *domain.Feed) error {
	return r.repos.Feed.UpdateFeedSettings(ctx, feed)
}

// DeleteFeed removes a feed
func (r *RepositoryAdapter) DeleteFeed(ctx context.Context, id int64) error {
	return r.repos.Feed.DeleteFeed(ctx, id)
}

// GetEntries returns entries of a feed. The feed is loaded first to report unknown feeds as not found.
func (r *RepositoryAdapter) GetEntries(ctx context.Context, feedID int64, state domain.EntryState) ([]domain.Entry, error) {
	if _, err := r.repos.Feed.GetFeed(ctx, feedID); err != nil {
		return nil, err
	}
	return r.repos.Entry.GetEntries(ctx, repository.EntryFilter{FeedID: feedID, State: state})
}

// SetEntryState marks an entry read or unread
func (r *RepositoryAdapter) SetEntryState(ctx context.Context, id int64, state domain.EntryState) error {
	return r.repos.Entry.SetEntryState(ctx, id, state)
}

// GetNotifications returns notifications of the owner in the given state, empty values match all
func (r *RepositoryAdapter) GetNotifications(ctx context.Context, owner string, state domain.EntryState) ([]domain.Notification, error) {
	return r.repos.Notification.GetNotifications(ctx, repository.NotificationFilter{Owner: owner, State: state})
}

// SetNotificationState marks a notification read or unread
func (r *RepositoryAdapter) SetNotificationState(ctx context.Context, id int64, state domain.EntryState) error {
	return r.repos.Notification.SetNotificationState(ctx, id, state)
}
