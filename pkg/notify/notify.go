// Package notify records per-owner notifications about feed updates
package notify

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rssfeeder/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store appends notifications
type Store interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
}

// Notifier appends notifications for the owner of a feed
type Notifier struct {
	store Store
}

// New makes a notifier writing to store
func New(store Store) *Notifier {
	return &Notifier{store: store}
}

// With returns a notifier writing to another store, typically one bound to a transaction
func (n *Notifier) With(store Store) *Notifier {
	return &Notifier{store: store}
}

// Notify appends an unread notification for the feed owner. Storage errors are returned as is.
func (n *Notifier) Notify(ctx context.Context, feed *domain.Feed, title, message string, isError bool) error {
	note := &domain.Notification{
		FeedID:  feed.ID,
		Owner:   feed.Owner,
		Title:   title,
		Message: message,
		IsError: isError,
		State:   domain.EntryUnread,
	}
	if err := n.store.CreateNotification(ctx, note); err != nil {
		return fmt.Errorf("notify %s about feed %d: %w", feed.Owner, feed.ID, err)
	}
	if isError {
		lgr.Printf("[WARN] notified %s about feed %d: %s, %s", feed.Owner, feed.ID, title, message)
		return nil
	}
	lgr.Printf("[DEBUG] notified %s about feed %d: %s", feed.Owner, feed.ID, title)
	return nil
}
