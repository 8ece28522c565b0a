package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rssfeeder/pkg/domain"
	"github.com/umputun/rssfeeder/pkg/repository"
)

func setupAdapter(t *testing.T) (*RepositoryAdapter, *repository.Repositories) {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return NewRepositoryAdapter(repos), repos
}

func TestRepositoryAdapter_Feeds(t *testing.T) {
	adapter, _ := setupAdapter(t)
	ctx := context.Background()

	alice := &domain.Feed{Link: "https://example.com/rss", Owner: "alice", Following: true}
	require.NoError(t, adapter.CreateFeed(ctx, alice))
	bob := &domain.Feed{Link: "https://example.com/rss", Owner: "bob", Following: true}
	require.NoError(t, adapter.CreateFeed(ctx, bob))

	err := adapter.CreateFeed(ctx, &domain.Feed{Link: "https://example.com/rss", Owner: "alice"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	feeds, err := adapter.GetFeeds(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, feeds, 1)
	assert.Equal(t, alice.ID, feeds[0].ID)

	feeds, err = adapter.GetFeeds(ctx, "")
	require.NoError(t, err)
	assert.Len(t, feeds, 2)

	alice.Flagged, alice.Nickname = true, "mine"
	require.NoError(t, adapter.UpdateFeedSettings(ctx, alice))
	got, err := adapter.GetFeed(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, got.Flagged)
	assert.Equal(t, "mine", got.Nickname)

	require.NoError(t, adapter.DeleteFeed(ctx, alice.ID))
	_, err = adapter.GetFeed(ctx, alice.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, adapter.DeleteFeed(ctx, alice.ID), domain.ErrNotFound)
}

func TestRepositoryAdapter_EntriesAndNotifications(t *testing.T) {
	adapter, repos := setupAdapter(t)
	ctx := context.Background()

	feed := &domain.Feed{Link: "https://example.com/rss", Owner: "alice", Following: true}
	require.NoError(t, adapter.CreateFeed(ctx, feed))

	now := time.Now().UTC()
	_, err := repos.Entry.CreateEntries(ctx, []domain.Entry{
		{FeedID: feed.ID, GUID: "g1", State: domain.EntryUnread, Title: "one", Date: now},
		{FeedID: feed.ID, GUID: "g2", State: domain.EntryUnread, Title: "two", Date: now},
	})
	require.NoError(t, err)

	entries, err := adapter.GetEntries(ctx, feed.ID, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NoError(t, adapter.SetEntryState(ctx, entries[0].ID, domain.EntryRead))
	unread, err := adapter.GetEntries(ctx, feed.ID, domain.EntryUnread)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, entries[1].ID, unread[0].ID)

	_, err = adapter.GetEntries(ctx, feed.ID+100, "")
	require.ErrorIs(t, err, domain.ErrNotFound, "unknown feed")
	require.ErrorIs(t, adapter.SetEntryState(ctx, 9999, domain.EntryRead), domain.ErrNotFound)

	require.NoError(t, repos.Notification.CreateNotification(ctx, &domain.Notification{FeedID: feed.ID, Owner: "alice",
		Title: "Gone", Message: "gone", IsError: true, State: domain.EntryUnread}))
	notes, err := adapter.GetNotifications(ctx, "alice", domain.EntryUnread)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.NoError(t, adapter.SetNotificationState(ctx, notes[0].ID, domain.EntryRead))
	notes, err = adapter.GetNotifications(ctx, "alice", domain.EntryUnread)
	require.NoError(t, err)
	assert.Empty(t, notes)

	notes, err = adapter.GetNotifications(ctx, "bob", "")
	require.NoError(t, err)
	assert.Empty(t, notes)
}
