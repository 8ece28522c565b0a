package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rssfeeder/pkg/domain"
	"github.com/umputun/rssfeeder/pkg/repository"
)

func setupStore(t *testing.T) *repository.TaskRepository {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos.Task
}

// startQueue runs the queue until the test ends
func startQueue(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, q.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func waitState(t *testing.T, q *Queue, id string, state domain.TaskState) *domain.Task {
	t.Helper()
	var task *domain.Task
	require.Eventually(t, func() bool {
		var err error
		task, err = q.Status(context.Background(), id)
		return err == nil && task.State == state
	}, 5*time.Second, 10*time.Millisecond, "task %s never reached %s", id, state)
	return task
}

type testArgs struct {
	FeedID int64 `json:"feed_id"`
}

func TestQueue_RunTask(t *testing.T) {
	q := New(setupStore(t), Config{Workers: 2, PollInterval: 10 * time.Millisecond})
	var got atomic.Int64
	q.Register("update", func(_ context.Context, args json.RawMessage) error {
		var a testArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return Permanent(err)
		}
		got.Store(a.FeedID)
		return nil
	})
	startQueue(t, q)

	id, err := q.Enqueue(context.Background(), "update", testArgs{FeedID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	task := waitState(t, q, id, domain.TaskDone)
	assert.Equal(t, int64(42), got.Load())
	assert.Equal(t, 1, task.Attempts)
	assert.Equal(t, "update", task.Name)
}

func TestQueue_EnqueueUnknown(t *testing.T) {
	q := New(setupStore(t), Config{})
	_, err := q.Enqueue(context.Background(), "nope", nil)
	require.Error(t, err)
}

func TestQueue_Retry(t *testing.T) {
	q := New(setupStore(t), Config{MaxRetries: 3, RetryDelay: 10 * time.Millisecond, PollInterval: 10 * time.Millisecond})
	var calls atomic.Int32
	q.Register("flaky", func(context.Context, json.RawMessage) error {
		if calls.Add(1) < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	startQueue(t, q)

	id, err := q.Enqueue(context.Background(), "flaky", nil)
	require.NoError(t, err)
	task := waitState(t, q, id, domain.TaskDone)
	assert.Equal(t, 3, task.Attempts)
	assert.Equal(t, int32(3), calls.Load())
}

func TestQueue_RetriesExhausted(t *testing.T) {
	q := New(setupStore(t), Config{MaxRetries: 1, RetryDelay: 10 * time.Millisecond, PollInterval: 10 * time.Millisecond})
	var calls atomic.Int32
	q.Register("broken", func(context.Context, json.RawMessage) error {
		calls.Add(1)
		return errors.New("always fails")
	})
	startQueue(t, q)

	id, err := q.Enqueue(context.Background(), "broken", nil)
	require.NoError(t, err)
	task := waitState(t, q, id, domain.TaskDead)
	assert.Equal(t, 2, task.Attempts)
	assert.Equal(t, "always fails", task.LastError)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQueue_Permanent(t *testing.T) {
	q := New(setupStore(t), Config{MaxRetries: 5, PollInterval: 10 * time.Millisecond})
	var calls atomic.Int32
	q.Register("missing", func(context.Context, json.RawMessage) error {
		calls.Add(1)
		return Permanent(domain.ErrNotFound)
	})
	startQueue(t, q)

	id, err := q.Enqueue(context.Background(), "missing", nil)
	require.NoError(t, err)
	task := waitState(t, q, id, domain.TaskDead)
	assert.Equal(t, 1, task.Attempts)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQueue_TimeLimit(t *testing.T) {
	q := New(setupStore(t), Config{MaxRetries: 5, TimeLimit: 50 * time.Millisecond, PollInterval: 10 * time.Millisecond})
	q.Register("slow", func(ctx context.Context, _ json.RawMessage) error {
		<-ctx.Done()
		return ctx.Err()
	})
	startQueue(t, q)

	id, err := q.Enqueue(context.Background(), "slow", nil)
	require.NoError(t, err)
	task := waitState(t, q, id, domain.TaskDead)
	assert.Equal(t, 1, task.Attempts, "time limit is fatal, not retried")
	assert.Contains(t, task.LastError, "time limit exceeded")
}

func TestQueue_AgeLimit(t *testing.T) {
	q := New(setupStore(t), Config{AgeLimit: time.Hour, PollInterval: 10 * time.Millisecond})
	var calls atomic.Int32
	q.Register("old", func(context.Context, json.RawMessage) error {
		calls.Add(1)
		return nil
	})
	id, err := q.Enqueue(context.Background(), "old", nil)
	require.NoError(t, err)

	q.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }
	startQueue(t, q)

	task := waitState(t, q, id, domain.TaskDead)
	assert.Equal(t, "age limit exceeded", task.LastError)
	assert.Zero(t, calls.Load())
}

func TestQueue_Panic(t *testing.T) {
	q := New(setupStore(t), Config{MaxRetries: 0, PollInterval: 10 * time.Millisecond})
	q.Register("panicky", func(context.Context, json.RawMessage) error { panic("boom") })
	startQueue(t, q)

	id, err := q.Enqueue(context.Background(), "panicky", nil)
	require.NoError(t, err)
	task := waitState(t, q, id, domain.TaskDead)
	assert.Contains(t, task.LastError, "boom")
}

func TestQueue_RequeueRunning(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateTask(ctx, &domain.Task{ID: "left-over", Name: "job", Args: "null"}))
	_, err := store.ClaimTask(ctx, time.Now().Add(time.Second))
	require.NoError(t, err)

	q := New(store, Config{MaxRetries: 2, PollInterval: 10 * time.Millisecond})
	var calls atomic.Int32
	q.Register("job", func(context.Context, json.RawMessage) error {
		calls.Add(1)
		return nil
	})
	startQueue(t, q)

	task := waitState(t, q, "left-over", domain.TaskDone)
	assert.Equal(t, 2, task.Attempts)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQueue_WorkersLimit(t *testing.T) {
	q := New(setupStore(t), Config{Workers: 2, PollInterval: 10 * time.Millisecond})
	var active, maxActive atomic.Int32
	var mu sync.Mutex
	q.Register("sleep", func(context.Context, json.RawMessage) error {
		n := active.Add(1)
		mu.Lock()
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		mu.Unlock()
		time.Sleep(30 * time.Millisecond)
		active.Add(-1)
		return nil
	})
	startQueue(t, q)

	ids := make([]string, 0, 6)
	for range 6 {
		id, err := q.Enqueue(context.Background(), "sleep", nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	for _, id := range ids {
		waitState(t, q, id, domain.TaskDone)
	}
	assert.LessOrEqual(t, maxActive.Load(), int32(2))
	assert.Positive(t, maxActive.Load())
}

func TestQueue_RetryDelay(t *testing.T) {
	q := New(nil, Config{RetryDelay: time.Second})
	assert.Equal(t, time.Second, q.retryDelay(1))
	assert.Equal(t, 2*time.Second, q.retryDelay(2))
	assert.Equal(t, 8*time.Second, q.retryDelay(4))
	assert.Equal(t, maxRetryDelay, q.retryDelay(100))
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))
	err := Permanent(domain.ErrNotFound)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, IsPermanent(errors.New("plain")))
}
