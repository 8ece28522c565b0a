// Package taskqueue runs named tasks persisted in the database with a pool of workers.
// Tasks survive restarts, failed runs are retried with exponential delay, and tasks
// exceeding the time or age limits are moved to the dead state.
package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/rssfeeder/pkg/domain"
)

// maxRetryDelay caps the delay between runs of a failing task
const maxRetryDelay = time.Hour

// Store persists tasks
type Store interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ClaimTask(ctx context.Context, now time.Time) (*domain.Task, error)
	CompleteTask(ctx context.Context, id string) error
	RetryTask(ctx context.Context, id string, runAt time.Time, lastErr string) error
	KillTask(ctx context.Context, id, lastErr string) error
	RequeueRunning(ctx context.Context) (int64, error)
}

// Handler runs a task with its json arguments
type Handler func(ctx context.Context, args json.RawMessage) error

// Config holds queue configuration
type Config struct {
	Workers      int           // concurrent task runs
	MaxRetries   int           // runs after the first failed one
	RetryDelay   time.Duration // delay before the first retry, doubled for each next one
	TimeLimit    time.Duration // max duration of one run, zero for no limit
	AgeLimit     time.Duration // tasks enqueued longer ago are dropped unrun, zero for no limit
	PollInterval time.Duration // how often to look for due tasks without a wake-up
}

// Queue is a durable task queue with a worker pool
type Queue struct {
	store Store
	cfg   Config
	now   func() time.Time

	mu       sync.RWMutex
	handlers map[string]Handler
	wake     chan struct{}
}

// New makes a queue over store
func New(store Store, cfg Config) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Queue{
		store:    store,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
		handlers: make(map[string]Handler),
		wake:     make(chan struct{}, 1),
	}
}

// Register sets the handler for tasks with the given name
func (q *Queue) Register(name string, h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[name] = h
}

// Enqueue persists a task and returns its id without waiting for it to run
func (q *Queue) Enqueue(ctx context.Context, name string, args any) (string, error) {
	q.mu.RLock()
	_, ok := q.handlers[name]
	q.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("no handler registered for task %q", name)
	}

	data, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("marshal %s args: %w", name, err)
	}
	task := &domain.Task{ID: uuid.NewString(), Name: name, Args: string(data), RunAt: q.now()}
	if err := q.store.CreateTask(ctx, task); err != nil {
		return "", fmt.Errorf("enqueue %s: %w", name, err)
	}
	lgr.Printf("[DEBUG] enqueued task %s %s %s", task.ID, name, task.Args)

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return task.ID, nil
}

// Status returns the current state of a task
func (q *Queue) Status(ctx context.Context, id string) (*domain.Task, error) {
	return q.store.GetTask(ctx, id)
}

// Run dispatches due tasks to workers until ctx is canceled. Tasks left running by a previous
// process are returned to pending first. Returns after all started runs are finished.
func (q *Queue) Run(ctx context.Context) error {
	n, err := q.store.RequeueRunning(ctx)
	if err != nil {
		return fmt.Errorf("requeue running tasks: %w", err)
	}
	if n > 0 {
		lgr.Printf("[INFO] requeued %d interrupted task(s)", n)
	}
	lgr.Printf("[INFO] task queue started with %d workers", q.cfg.Workers)

	var g errgroup.Group
	g.SetLimit(q.cfg.Workers)

	ticker := time.NewTicker(q.cfg.PollInterval)
	defer ticker.Stop()

	for {
		q.dispatch(ctx, &g)
		select {
		case <-ctx.Done():
			_ = g.Wait()
			lgr.Printf("[INFO] task queue stopped")
			return nil
		case <-q.wake:
		case <-ticker.C:
		}
	}
}

// dispatch claims due tasks and starts them, blocking while all workers are busy
func (q *Queue) dispatch(ctx context.Context, g *errgroup.Group) {
	for ctx.Err() == nil {
		task, err := q.store.ClaimTask(ctx, q.now())
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) && ctx.Err() == nil {
				lgr.Printf("[WARN] failed to claim task: %v", err)
			}
			return
		}
		g.Go(func() error {
			q.process(ctx, task)
			select {
			case q.wake <- struct{}{}:
			default:
			}
			return nil
		})
	}
}

// process runs one claimed task and records the outcome
func (q *Queue) process(ctx context.Context, task *domain.Task) {
	// outcome is recorded even if the queue is stopping
	storeCtx := context.WithoutCancel(ctx)

	if q.cfg.AgeLimit > 0 && q.now().Sub(task.EnqueuedAt) > q.cfg.AgeLimit {
		lgr.Printf("[WARN] task %s %s exceeded age limit %v, dropped", task.ID, task.Name, q.cfg.AgeLimit)
		q.kill(storeCtx, task, "age limit exceeded")
		return
	}

	q.mu.RLock()
	h, ok := q.handlers[task.Name]
	q.mu.RUnlock()
	if !ok {
		lgr.Printf("[ERROR] no handler for task %s %s", task.ID, task.Name)
		q.kill(storeCtx, task, "no handler registered")
		return
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if q.cfg.TimeLimit > 0 {
		runCtx, cancel = context.WithTimeout(ctx, q.cfg.TimeLimit)
	}
	st := time.Now()
	err := safeRun(runCtx, h, json.RawMessage(task.Args))
	timedOut := errors.Is(runCtx.Err(), context.DeadlineExceeded)
	cancel()

	switch {
	case err == nil:
		lgr.Printf("[DEBUG] task %s %s done in %v", task.ID, task.Name, time.Since(st))
		if err := q.store.CompleteTask(storeCtx, task.ID); err != nil {
			lgr.Printf("[WARN] failed to complete task %s: %v", task.ID, err)
		}
	case ctx.Err() != nil:
		lgr.Printf("[INFO] task %s %s interrupted by shutdown", task.ID, task.Name)
		if err := q.store.RetryTask(storeCtx, task.ID, q.now(), "interrupted"); err != nil {
			lgr.Printf("[WARN] failed to requeue task %s: %v", task.ID, err)
		}
	case timedOut:
		lgr.Printf("[ERROR] task %s %s exceeded time limit %v: %v", task.ID, task.Name, q.cfg.TimeLimit, err)
		q.kill(storeCtx, task, fmt.Sprintf("time limit exceeded: %v", err))
	case IsPermanent(err):
		lgr.Printf("[ERROR] task %s %s failed permanently: %v", task.ID, task.Name, err)
		q.kill(storeCtx, task, err.Error())
	case task.Attempts > q.cfg.MaxRetries:
		lgr.Printf("[ERROR] task %s %s failed after %d attempt(s): %v", task.ID, task.Name, task.Attempts, err)
		q.kill(storeCtx, task, err.Error())
	default:
		delay := q.retryDelay(task.Attempts)
		lgr.Printf("[WARN] task %s %s attempt %d failed, retry in %v: %v", task.ID, task.Name, task.Attempts, delay, err)
		if err := q.store.RetryTask(storeCtx, task.ID, q.now().Add(delay), err.Error()); err != nil {
			lgr.Printf("[WARN] failed to reschedule task %s: %v", task.ID, err)
		}
	}
}

func (q *Queue) kill(ctx context.Context, task *domain.Task, reason string) {
	if err := q.store.KillTask(ctx, task.ID, reason); err != nil {
		lgr.Printf("[WARN] failed to mark task %s dead: %v", task.ID, err)
	}
}

// retryDelay doubles the base delay for every attempt already made
func (q *Queue) retryDelay(attempts int) time.Duration {
	delay := q.cfg.RetryDelay
	for i := 1; i < attempts && delay < maxRetryDelay; i++ {
		delay *= 2
	}
	return min(delay, maxRetryDelay)
}

// safeRun calls the handler, a panic is turned into an error
func safeRun(ctx context.Context, h Handler, args json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, args)
}

// permanentError marks a handler error that must not be retried
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the queue moves the task to dead without retries
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was wrapped with Permanent
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
