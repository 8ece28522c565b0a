package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/rssfeeder/pkg/domain"
	"github.com/umputun/rssfeeder/pkg/taskqueue"
)

//go:generate moq -out mocks/queue.go -pkg mocks -skip-ensure -fmt goimports . Queue
//go:generate moq -out mocks/updater.go -pkg mocks -skip-ensure -fmt goimports . Updater

// TaskUpdateFeed is the name of the queued feed update task
const TaskUpdateFeed = "update_feed"

// Queue accepts tasks for asynchronous execution
type Queue interface {
	Register(name string, h taskqueue.Handler)
	Enqueue(ctx context.Context, name string, args any) (string, error)
}

// Updater runs one feed update
type Updater interface {
	UpdateFeed(ctx context.Context, feedID int64) (Report, error)
}

// Scheduler submits feed updates to the task queue, on request and periodically for all unflagged feeds
type Scheduler struct {
	storage        Storage
	updater        Updater
	queue          Queue
	updateInterval time.Duration
	maxWorkers     int

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Params holds scheduler dependencies and configuration
type Params struct {
	Storage        Storage
	Updater        Updater
	Queue          Queue
	UpdateInterval time.Duration // zero disables periodic updates
	MaxWorkers     int           // parallel submissions in SubmitAll
}

// updateArgs is the payload of TaskUpdateFeed
type updateArgs struct {
	FeedID int64 `json:"feed_id"`
}

// NewScheduler creates a scheduler and registers the feed update handler on the queue
func NewScheduler(params Params) *Scheduler {
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	s := &Scheduler{
		storage:        params.Storage,
		updater:        params.Updater,
		queue:          params.Queue,
		updateInterval: params.UpdateInterval,
		maxWorkers:     params.MaxWorkers,
	}
	s.queue.Register(TaskUpdateFeed, s.handleUpdate)
	return s
}

// SubmitUpdate enqueues an update of the feed and returns the task id without waiting for it
func (s *Scheduler) SubmitUpdate(ctx context.Context, feedID int64) (string, error) {
	id, err := s.queue.Enqueue(ctx, TaskUpdateFeed, updateArgs{FeedID: feedID})
	if err != nil {
		return "", fmt.Errorf("submit update of feed %d: %w", feedID, err)
	}
	lgr.Printf("[DEBUG] submitted update of feed %d, task %s", feedID, id)
	return id, nil
}

// SubmitAll enqueues updates of all unflagged feeds and returns the number of submitted tasks.
// A failed submission is logged and does not stop the others.
func (s *Scheduler) SubmitAll(ctx context.Context) (int, error) {
	feeds, err := s.storage.GetUnflaggedFeeds(ctx)
	if err != nil {
		return 0, fmt.Errorf("get unflagged feeds: %w", err)
	}

	var (
		mu        sync.Mutex
		submitted int
	)
	g := errgroup.Group{}
	g.SetLimit(s.maxWorkers)
	for _, f := range feeds {
		g.Go(func() error {
			if _, err := s.SubmitUpdate(ctx, f.ID); err != nil {
				lgr.Printf("[WARN] %v", err)
				return nil
			}
			mu.Lock()
			submitted++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	lgr.Printf("[INFO] submitted %d of %d feed updates", submitted, len(feeds))
	return submitted, ctx.Err()
}

// Start runs SubmitAll immediately and then every update interval, until Stop or ctx cancellation
func (s *Scheduler) Start(ctx context.Context) {
	if s.updateInterval <= 0 {
		lgr.Printf("[INFO] periodic feed updates disabled")
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.updateInterval)
		defer ticker.Stop()

		s.submitAll(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.submitAll(ctx)
			}
		}
	}()
	lgr.Printf("[INFO] scheduler started with update interval %v", s.updateInterval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) submitAll(ctx context.Context) {
	if _, err := s.SubmitAll(ctx); err != nil && ctx.Err() == nil {
		lgr.Printf("[ERROR] failed to submit feed updates: %v", err)
	}
}

// handleUpdate is the queue handler of TaskUpdateFeed. A missing feed or bad payload is not retried.
func (s *Scheduler) handleUpdate(ctx context.Context, args json.RawMessage) error {
	var a updateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return taskqueue.Permanent(fmt.Errorf("decode update args: %w", err))
	}

	rep, err := s.updater.UpdateFeed(ctx, a.FeedID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return taskqueue.Permanent(err)
		}
		return err
	}
	if rep.Stage == StageFailed {
		lgr.Printf("[DEBUG] update of feed %d failed at fetch, %s", a.FeedID, rep.Err.Kind)
	}
	return nil
}
