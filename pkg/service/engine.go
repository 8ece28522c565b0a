// Package service wires repositories, fetcher, task queue and scheduler into the feed update engine
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rssfeeder/pkg/feed"
	"github.com/umputun/rssfeeder/pkg/notify"
	"github.com/umputun/rssfeeder/pkg/repository"
	"github.com/umputun/rssfeeder/pkg/scheduler"
	"github.com/umputun/rssfeeder/pkg/taskqueue"
)

// Params configures the engine
type Params struct {
	Fetch          feed.FetcherParams
	Retry          feed.RetryParams
	Sanitizer      feed.SanitizerParams
	Queue          taskqueue.Config
	UpdateInterval time.Duration // periodic updates of unflagged feeds, zero to disable

	URLFetcher feed.URLFetcher // single-request fetcher, http fetcher made from Fetch if nil
	Now        func() time.Time
}

// Engine runs feed updates submitted on request or periodically
type Engine struct {
	Scheduler *scheduler.Scheduler
	Queue     *taskqueue.Queue
	Updater   *scheduler.FeedUpdater
}

// NewEngine makes an engine over repositories
func NewEngine(repos *repository.Repositories, params Params) *Engine {
	if params.Now == nil {
		params.Now = time.Now
	}
	urlFetcher := params.URLFetcher
	if urlFetcher == nil {
		urlFetcher = feed.NewHTTPFetcher(params.Fetch)
	}

	storage := NewUpdateStorage(repos)
	notifier := notify.New(repos.Notification)
	updater := scheduler.NewFeedUpdater(scheduler.FeedUpdaterConfig{
		Storage:    storage,
		Fetcher:    feed.NewRetryFetcher(urlFetcher, notifier, params.Retry),
		Reconciler: feed.NewReconciler(feed.NewSanitizer(params.Sanitizer), params.Now),
		Notifier:   notifier,
		Now:        params.Now,
	})
	queue := taskqueue.New(repos.Task, params.Queue)
	sched := scheduler.NewScheduler(scheduler.Params{
		Storage:        storage,
		Updater:        updater,
		Queue:          queue,
		UpdateInterval: params.UpdateInterval,
		MaxWorkers:     params.Queue.Workers,
	})
	return &Engine{Scheduler: sched, Queue: queue, Updater: updater}
}

// Run processes queued updates and submits periodic ones until ctx is canceled
func (e *Engine) Run(ctx context.Context) error {
	e.Scheduler.Start(ctx)
	defer e.Scheduler.Stop()

	lgr.Printf("[INFO] feed update engine started")
	if err := e.Queue.Run(ctx); err != nil {
		return fmt.Errorf("run task queue: %w", err)
	}
	return nil
}
