package feed_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rssfeeder/pkg/domain"
	"github.com/umputun/rssfeeder/pkg/feed"
	"github.com/umputun/rssfeeder/pkg/feed/mocks"
)

var fastRetry = feed.RetryParams{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, MaxRedirects: 1}

func okNotifier() *mocks.NotifierMock {
	return &mocks.NotifierMock{NotifyFunc: func(context.Context, *domain.Feed, string, string, bool) error { return nil }}
}

// sequence returns fetch results in order, repeating the last one
func sequence(results ...feed.Result) *mocks.URLFetcherMock {
	i := 0
	return &mocks.URLFetcherMock{FetchFunc: func(_ context.Context, feedURL string) feed.Result {
		res := results[min(i, len(results)-1)]
		i++
		if res.URL == "" {
			res.URL = feedURL
		}
		return res
	}}
}

func TestRetryFetcher_Success(t *testing.T) {
	fetcher := sequence(feed.Result{Kind: feed.KindSuccess, Status: 200, Feed: &feed.ParsedFeed{Title: "t"}})
	notifier := okNotifier()
	rf := feed.NewRetryFetcher(fetcher, notifier, fastRetry)

	f := &domain.Feed{ID: 1, Link: "https://example.com/rss"}
	pf, err := rf.Fetch(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "t", pf.Title)
	assert.Len(t, fetcher.FetchCalls(), 1)
	assert.Empty(t, notifier.NotifyCalls())
}

func TestRetryFetcher_TemporaryThenSuccess(t *testing.T) {
	fetcher := sequence(
		feed.Result{Kind: feed.KindTemporary, Status: 503, Err: errors.New("unexpected status 503")},
		feed.Result{Kind: feed.KindSuccess, Status: 200, Feed: &feed.ParsedFeed{Title: "t"}},
	)
	notifier := okNotifier()
	rf := feed.NewRetryFetcher(fetcher, notifier, fastRetry)

	f := &domain.Feed{ID: 1, Link: "https://example.com/rss", Owner: "alice"}
	pf, err := rf.Fetch(context.Background(), f)
	require.NoError(t, err)
	require.NotNil(t, pf)
	assert.Len(t, fetcher.FetchCalls(), 2)

	calls := notifier.NotifyCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.TitleBackOff, calls[0].Title)
	assert.False(t, calls[0].IsError)
	assert.Equal(t, f, calls[0].Feed)
	assert.Contains(t, calls[0].Message, "attempt 1 of 3")
	assert.Contains(t, calls[0].Message, "503")
}

func TestRetryFetcher_Exhausted(t *testing.T) {
	for _, attempts := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("%d attempts", attempts), func(t *testing.T) {
			fetcher := sequence(feed.Result{Kind: feed.KindTemporary, Status: 500, Err: errors.New("unexpected status 500")})
			notifier := okNotifier()
			params := fastRetry
			params.MaxAttempts = attempts
			rf := feed.NewRetryFetcher(fetcher, notifier, params)

			_, err := rf.Fetch(context.Background(), &domain.Feed{ID: 1, Link: "https://example.com/rss"})
			var fe *feed.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, feed.KindTemporary, fe.Kind)
			assert.Equal(t, attempts, fe.Attempts)
			assert.Equal(t, 500, fe.Status)
			assert.Len(t, fetcher.FetchCalls(), attempts)
			assert.Len(t, notifier.NotifyCalls(), attempts-1, "one backoff notification per wait")
		})
	}
}

func TestRetryFetcher_Terminal(t *testing.T) {
	tbl := []struct {
		name string
		res  feed.Result
	}{
		{"gone", feed.Result{Kind: feed.KindGone, Status: 410, Err: errors.New("gone")}},
		{"malformed", feed.Result{Kind: feed.KindMalformed, Status: 200, Err: errors.New("no title"),
			Feed: &feed.ParsedFeed{Link: "https://example.com"}}},
		{"unrecognized", feed.Result{Kind: feed.KindUnrecognized, Status: 403, Err: errors.New("forbidden")}},
		{"temporary redirect loop", feed.Result{Kind: feed.KindRedirectLoop, Err: errors.New("too many redirects")}},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := sequence(tt.res)
			notifier := okNotifier()
			rf := feed.NewRetryFetcher(fetcher, notifier, fastRetry)

			_, err := rf.Fetch(context.Background(), &domain.Feed{ID: 1, Link: "https://example.com/rss"})
			var fe *feed.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.res.Kind, fe.Kind)
			assert.Equal(t, 1, fe.Attempts)
			assert.Len(t, fetcher.FetchCalls(), 1, "terminal failures are not retried")
			assert.Empty(t, notifier.NotifyCalls())
			if tt.res.Kind == feed.KindMalformed {
				require.NotNil(t, fe.Partial)
				assert.Equal(t, "https://example.com", fe.Partial.Link)
			}
		})
	}
}

func TestRetryFetcher_Redirect(t *testing.T) {
	t.Run("followed without counting as attempt", func(t *testing.T) {
		fetcher := sequence(
			feed.Result{Kind: feed.KindTemporary, Status: 503},
			feed.Result{Kind: feed.KindRedirect, Status: 301, Location: "https://new.example.com/rss"},
			feed.Result{Kind: feed.KindSuccess, Status: 200, Feed: &feed.ParsedFeed{Title: "t"}},
		)
		notifier := okNotifier()
		params := fastRetry
		params.MaxAttempts = 2
		rf := feed.NewRetryFetcher(fetcher, notifier, params)

		f := &domain.Feed{ID: 1, Link: "https://example.com/rss"}
		pf, err := rf.Fetch(context.Background(), f)
		require.NoError(t, err)
		require.NotNil(t, pf)
		assert.Equal(t, "https://new.example.com/rss", f.Link)
		calls := fetcher.FetchCalls()
		require.Len(t, calls, 3)
		assert.Equal(t, "https://new.example.com/rss", calls[2].FeedURL)
		assert.Len(t, notifier.NotifyCalls(), 1)
	})

	t.Run("hops over the limit", func(t *testing.T) {
		fetcher := sequence(
			feed.Result{Kind: feed.KindRedirect, Status: 301, Location: "https://a.example.com/rss"},
			feed.Result{Kind: feed.KindRedirect, Status: 301, Location: "https://b.example.com/rss"},
		)
		rf := feed.NewRetryFetcher(fetcher, okNotifier(), fastRetry)
		f := &domain.Feed{ID: 1, Link: "https://example.com/rss"}
		_, err := rf.Fetch(context.Background(), f)
		var fe *feed.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, feed.KindRedirectLoop, fe.Kind)
		assert.Len(t, fetcher.FetchCalls(), 2)
	})

	t.Run("redirect back to a visited url", func(t *testing.T) {
		fetcher := sequence(
			feed.Result{Kind: feed.KindRedirect, Status: 308, Location: "https://b.example.com/rss"},
			feed.Result{Kind: feed.KindRedirect, Status: 308, Location: "https://example.com/rss"},
		)
		params := fastRetry
		params.MaxRedirects = 5
		rf := feed.NewRetryFetcher(fetcher, okNotifier(), params)
		_, err := rf.Fetch(context.Background(), &domain.Feed{ID: 1, Link: "https://example.com/rss"})
		var fe *feed.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, feed.KindRedirectLoop, fe.Kind)
	})
}

func TestRetryFetcher_NotifyFailure(t *testing.T) {
	errStore := errors.New("database is gone")
	fetcher := sequence(feed.Result{Kind: feed.KindTemporary, Status: 503})
	notifier := &mocks.NotifierMock{NotifyFunc: func(context.Context, *domain.Feed, string, string, bool) error {
		return errStore
	}}
	params := fastRetry
	params.BaseDelay, params.MaxDelay = time.Hour, time.Hour
	rf := feed.NewRetryFetcher(fetcher, notifier, params)

	st := time.Now()
	_, err := rf.Fetch(context.Background(), &domain.Feed{ID: 1, Link: "https://example.com/rss"})
	require.ErrorIs(t, err, errStore)
	var fe *feed.FetchError
	assert.False(t, errors.As(err, &fe), "storage failure is not a fetch failure")
	assert.Len(t, fetcher.FetchCalls(), 1)
	assert.Less(t, time.Since(st), time.Minute, "no wait after a failed notification")
}

func TestRetryFetcher_Canceled(t *testing.T) {
	fetcher := sequence(feed.Result{Kind: feed.KindTemporary, Status: 503})
	params := fastRetry
	params.BaseDelay, params.MaxDelay = time.Hour, time.Hour
	rf := feed.NewRetryFetcher(fetcher, okNotifier(), params)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := rf.Fetch(ctx, &domain.Feed{ID: 1, Link: "https://example.com/rss"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
