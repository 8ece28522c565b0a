package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rssfeeder/pkg/domain"
	"github.com/umputun/rssfeeder/pkg/feed"
	"github.com/umputun/rssfeeder/pkg/notify"
)

//go:generate moq -out mocks/storage.go -pkg mocks -skip-ensure -fmt goimports . Storage
//go:generate moq -out mocks/tx.go -pkg mocks -skip-ensure -fmt goimports . Tx
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// Storage gives the updater access to feeds and to transactions
type Storage interface {
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetUnflaggedFeeds(ctx context.Context) ([]domain.Feed, error)
	InTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of writes made by one feed update, all bound to the same transaction
type Tx interface {
	UpdateFeedMetadata(ctx context.Context, feed *domain.Feed) error
	SetFeedFlagged(ctx context.Context, feedID int64, flagged bool) error
	GetEntriesByGUIDs(ctx context.Context, feedID int64, guids []string) (map[string]domain.Entry, error)
	CreateEntries(ctx context.Context, entries []domain.Entry) (int, error)
	UpdateEntries(ctx context.Context, entries []domain.Entry) error
	CreateNotification(ctx context.Context, n *domain.Notification) error
}

// Fetcher gets the parsed document of a feed, retrying temporary failures.
// Terminal failures are reported as *feed.FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, f *domain.Feed) (*feed.ParsedFeed, error)
}

// Reconciler splits parsed entries into creates and updates against stored ones
type Reconciler interface {
	GUIDs(raw []feed.RawEntry) []string
	Reconcile(feedID int64, existing map[string]domain.Entry, raw []feed.RawEntry) (toCreate, toUpdate []domain.Entry)
}

// Stage is the step a feed update reached
type Stage string

// update stages, in the order they are passed
const (
	StageFetching    Stage = "fetching"
	StageReconciling Stage = "reconciling"
	StagePersisting  Stage = "persisting"
	StageNotifying   Stage = "notifying"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// Report describes the outcome of one feed update
type Report struct {
	FeedID  int64
	Stage   Stage
	Link    string // link the feed is fetched from after the update
	Created int
	Updated int
	Err     *feed.FetchError // terminal fetch failure, set for StageFailed
}

// FeedUpdater runs a single feed update: fetch with retries, reconcile entries and persist
// the outcome in one transaction
type FeedUpdater struct {
	storage    Storage
	fetcher    Fetcher
	reconciler Reconciler
	notifier   *notify.Notifier
	now        func() time.Time
}

// FeedUpdaterConfig holds dependencies of FeedUpdater
type FeedUpdaterConfig struct {
	Storage    Storage
	Fetcher    Fetcher
	Reconciler Reconciler
	Notifier   *notify.Notifier // bound to the update transaction for each write, required
	Now        func() time.Time // defaults to time.Now
}

// NewFeedUpdater makes a FeedUpdater
func NewFeedUpdater(cfg FeedUpdaterConfig) *FeedUpdater {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &FeedUpdater{storage: cfg.Storage, fetcher: cfg.Fetcher, reconciler: cfg.Reconciler,
		notifier: cfg.Notifier, now: cfg.Now}
}

// UpdateFeed fetches the feed and stores its entries. Terminal fetch failures flag the feed, notify
// the owner and are reported with StageFailed and nil error. Storage and context errors are returned.
func (u *FeedUpdater) UpdateFeed(ctx context.Context, feedID int64) (Report, error) {
	rep := Report{FeedID: feedID, Stage: StageFetching}
	f, err := u.storage.GetFeed(ctx, feedID)
	if err != nil {
		return rep, fmt.Errorf("load feed: %w", err)
	}
	rep.Link = f.Link
	origLink := f.Link

	lgr.Printf("[DEBUG] updating feed %d, %s", f.ID, f.Link)
	parsed, err := u.fetcher.Fetch(ctx, f)
	if err != nil {
		var fe *feed.FetchError
		if errors.As(err, &fe) {
			f.Link = origLink
			return u.fail(ctx, f, fe)
		}
		return rep, fmt.Errorf("fetch feed %d: %w", feedID, err)
	}

	err = u.storage.InTransaction(ctx, func(tx Tx) error {
		rep.Stage = StageReconciling
		applyMetadata(f, parsed)
		if err := tx.UpdateFeedMetadata(ctx, f); err != nil {
			return fmt.Errorf("update feed metadata: %w", err)
		}

		existing, err := tx.GetEntriesByGUIDs(ctx, f.ID, u.reconciler.GUIDs(parsed.Entries))
		if err != nil {
			return fmt.Errorf("load existing entries: %w", err)
		}
		toCreate, toUpdate := u.reconciler.Reconcile(f.ID, existing, parsed.Entries)

		rep.Stage = StagePersisting
		if rep.Created, err = tx.CreateEntries(ctx, toCreate); err != nil {
			return fmt.Errorf("create entries: %w", err)
		}
		if err = tx.UpdateEntries(ctx, toUpdate); err != nil {
			return fmt.Errorf("update entries: %w", err)
		}
		rep.Updated = len(toUpdate)

		rep.Stage = StageNotifying
		msg := fmt.Sprintf("feed %d (%s) updated at %s: %d new, %d updated entries",
			f.ID, f.Link, u.now().UTC().Format(time.RFC3339), rep.Created, rep.Updated)
		return u.notifier.With(tx).Notify(ctx, f, domain.TitleFeedUpdated, msg, false)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) && f.Link != origLink {
			dupLink := f.Link
			f.Link = origLink
			return u.fail(ctx, f, &feed.FetchError{Kind: feed.KindDuplicateLink, URL: dupLink, Attempts: 1,
				Err: fmt.Errorf("owner %s already has a feed at %s", f.Owner, dupLink)})
		}
		return rep, fmt.Errorf("store feed %d update: %w", feedID, err)
	}

	rep.Stage, rep.Link = StageDone, f.Link
	lgr.Printf("[INFO] feed %d (%s) updated, %d new, %d updated entries", f.ID, f.Identifier(), rep.Created, rep.Updated)
	return rep, nil
}

// fail flags the feed and records an error notification for its owner, both in one transaction
func (u *FeedUpdater) fail(ctx context.Context, f *domain.Feed, fe *feed.FetchError) (Report, error) {
	rep := Report{FeedID: f.ID, Stage: StageFailed, Link: f.Link, Err: fe}
	msg := fmt.Sprintf("feed %d (%s): %v", f.ID, f.Link, fe)
	err := u.storage.InTransaction(ctx, func(tx Tx) error {
		if err := tx.SetFeedFlagged(ctx, f.ID, true); err != nil {
			return fmt.Errorf("flag feed: %w", err)
		}
		return u.notifier.With(tx).Notify(ctx, f, fe.Kind.String(), msg, true)
	})
	if err != nil {
		return rep, fmt.Errorf("record failure of feed %d: %w", f.ID, err)
	}
	lgr.Printf("[WARN] feed %d (%s) flagged, %v", f.ID, f.Identifier(), fe)
	return rep, nil
}

// applyMetadata copies document metadata to the feed, the fetch link is left as is
func applyMetadata(f *domain.Feed, parsed *feed.ParsedFeed) {
	f.Title = parsed.Title
	f.Subtitle = parsed.Subtitle
	f.Description = parsed.Description
	f.Language = parsed.Language
	f.Copyright = parsed.Copyright
	f.SiteURL = parsed.Link
	f.TTL = parsed.TTL
	f.LogoURL = parsed.LogoURL
	f.PubDate = parsed.Updated
	if f.PubDate == nil {
		f.PubDate = parsed.Published
	}
}
