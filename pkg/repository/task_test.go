package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rssfeeder/pkg/domain"
)

func TestTaskRepository_Lifecycle(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	task := &domain.Task{ID: "t1", Name: "update_feed", Args: `{"feed_id":1}`}
	require.NoError(t, repos.Task.CreateTask(ctx, task))
	assert.Equal(t, domain.TaskPending, task.State)
	require.ErrorIs(t, repos.Task.CreateTask(ctx, &domain.Task{ID: "t1", Name: "x"}), domain.ErrDuplicate)

	claimed, err := repos.Task.ClaimTask(ctx, time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "t1", claimed.ID)
	assert.Equal(t, domain.TaskRunning, claimed.State)
	assert.Equal(t, 1, claimed.Attempts)
	assert.Equal(t, `{"feed_id":1}`, claimed.Args)

	_, err = repos.Task.ClaimTask(ctx, time.Now().Add(time.Second))
	require.ErrorIs(t, err, domain.ErrNotFound, "running task can't be claimed twice")

	require.NoError(t, repos.Task.RetryTask(ctx, "t1", time.Now().Add(time.Hour), "temporary"))
	_, err = repos.Task.ClaimTask(ctx, time.Now())
	require.ErrorIs(t, err, domain.ErrNotFound, "retry is not due yet")

	claimed, err = repos.Task.ClaimTask(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, claimed.Attempts)
	assert.Equal(t, "temporary", claimed.LastError)

	require.NoError(t, repos.Task.CompleteTask(ctx, "t1"))
	got, err := repos.Task.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, got.State)
	assert.Empty(t, got.LastError)

	_, err = repos.Task.GetTask(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, repos.Task.CompleteTask(ctx, "missing"), domain.ErrNotFound)
}

func TestTaskRepository_ClaimOrder(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repos.Task.CreateTask(ctx, &domain.Task{ID: "late", Name: "n", RunAt: now.Add(-time.Minute)}))
	require.NoError(t, repos.Task.CreateTask(ctx, &domain.Task{ID: "early", Name: "n", RunAt: now.Add(-time.Hour)}))
	require.NoError(t, repos.Task.CreateTask(ctx, &domain.Task{ID: "future", Name: "n", RunAt: now.Add(time.Hour)}))

	first, err := repos.Task.ClaimTask(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "early", first.ID)
	second, err := repos.Task.ClaimTask(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "late", second.ID)
	_, err = repos.Task.ClaimTask(ctx, now)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepository_KillAndRequeue(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Task.CreateTask(ctx, &domain.Task{ID: "a", Name: "n"}))
	require.NoError(t, repos.Task.CreateTask(ctx, &domain.Task{ID: "b", Name: "n"}))
	_, err := repos.Task.ClaimTask(ctx, time.Now().Add(time.Second))
	require.NoError(t, err)
	_, err = repos.Task.ClaimTask(ctx, time.Now().Add(time.Second))
	require.NoError(t, err)

	require.NoError(t, repos.Task.KillTask(ctx, "a", "time limit exceeded"))
	n, err := repos.Task.RequeueRunning(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	a, err := repos.Task.GetTask(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDead, a.State)
	assert.Equal(t, "time limit exceeded", a.LastError)

	b, err := repos.Task.GetTask(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, b.State)

	pending, err := repos.Task.CountTasks(ctx, domain.TaskPending)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}
