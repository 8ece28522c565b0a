package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/rssfeeder/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . URLFetcher
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// URLFetcher makes a single fetch of a feed url
type URLFetcher interface {
	Fetch(ctx context.Context, feedURL string) Result
}

// Notifier records a notification for the feed owner
type Notifier interface {
	Notify(ctx context.Context, feed *domain.Feed, title, message string, isError bool) error
}

// RetryParams configures RetryFetcher
type RetryParams struct {
	MaxAttempts  int           // total fetch attempts for temporary failures, at least 1
	BaseDelay    time.Duration // delay after the first failed attempt
	MaxDelay     time.Duration // cap for a single delay
	Jitter       float64       // randomization factor, 0 for exact delays
	MaxRedirects int           // permanent redirects followed per update
}

// RetryFetcher fetches a feed with exponential backoff on temporary failures and follows permanent redirects.
// Every backoff is reported to the feed owner before waiting.
type RetryFetcher struct {
	fetcher  URLFetcher
	notifier Notifier
	params   RetryParams
}

// NewRetryFetcher makes a RetryFetcher
func NewRetryFetcher(fetcher URLFetcher, notifier Notifier, params RetryParams) *RetryFetcher {
	if params.MaxAttempts < 1 {
		params.MaxAttempts = 1
	}
	if params.BaseDelay <= 0 {
		params.BaseDelay = time.Second
	}
	if params.MaxDelay < params.BaseDelay {
		params.MaxDelay = params.BaseDelay
	}
	if params.MaxRedirects < 0 {
		params.MaxRedirects = 0
	}
	return &RetryFetcher{fetcher: fetcher, notifier: notifier, params: params}
}

// Fetch returns the parsed document of the feed. A permanent redirect changes feed.Link in place.
// Terminal fetch failures are returned as *FetchError, a failure to record a backoff notification
// and context cancellation are returned as is.
func (r *RetryFetcher) Fetch(ctx context.Context, feed *domain.Feed) (*ParsedFeed, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		attempts  int
		redirects int
		parsed    *ParsedFeed
		notifyErr error
	)
	visited := map[string]bool{feed.Link: true}

	operation := func() error {
		attempts++
		for {
			res := r.fetcher.Fetch(ctx, feed.Link)
			switch res.Kind {
			case KindSuccess:
				parsed = res.Feed
				return nil
			case KindRedirect:
				redirects++
				if redirects > r.params.MaxRedirects || visited[res.Location] {
					return backoff.Permanent(&FetchError{Kind: KindRedirectLoop, Status: res.Status, URL: res.Location,
						Attempts: attempts, Err: fmt.Errorf("redirect %d from %s not followed", redirects, feed.Link)})
				}
				visited[res.Location] = true
				lgr.Printf("[INFO] feed %d moved from %s to %s", feed.ID, feed.Link, res.Location)
				feed.Link = res.Location
				continue
			case KindTemporary:
				return toFetchError(res, attempts)
			default:
				return backoff.Permanent(toFetchError(res, attempts))
			}
		}
	}

	notify := func(err error, wait time.Duration) {
		msg := fmt.Sprintf("attempt %d of %d failed, retrying in %s: %v", attempts, r.params.MaxAttempts, wait, err)
		lgr.Printf("[WARN] feed %d, %s", feed.ID, msg)
		if nerr := r.notifier.Notify(ctx, feed, domain.TitleBackOff, msg, false); nerr != nil {
			notifyErr = fmt.Errorf("record backoff notification: %w", nerr)
			cancel()
		}
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(r.backOff(), uint64(r.params.MaxAttempts-1)), ctx), notify) //nolint:gosec // attempts are positive
	if notifyErr != nil {
		return nil, notifyErr
	}
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) && ctx.Err() == nil {
			return nil, fe
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return parsed, nil
}

func (r *RetryFetcher) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.params.BaseDelay
	b.MaxInterval = r.params.MaxDelay
	b.Multiplier = 2
	b.RandomizationFactor = r.params.Jitter
	b.MaxElapsedTime = 0
	return b
}

func toFetchError(res Result, attempts int) *FetchError {
	fe := &FetchError{Kind: res.Kind, Status: res.Status, URL: res.URL, Attempts: attempts, Err: res.Err}
	if res.Kind == KindMalformed {
		fe.Partial = res.Feed
	}
	return fe
}
