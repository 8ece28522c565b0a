package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/rssfeeder/pkg/domain"
)

const taskColumns = `id, name, args, state, attempts, last_error, run_at, enqueued_at, updated_at`

// TaskRepository persists task queue state
type TaskRepository struct {
	db   sqlx.ExtContext
	inTx bool
}

type taskSQL struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Args       string    `db:"args"`
	State      string    `db:"state"`
	Attempts   int       `db:"attempts"`
	LastError  string    `db:"last_error"`
	RunAt      time.Time `db:"run_at"`
	EnqueuedAt time.Time `db:"enqueued_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(database *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: database}
}

// CreateTask stores a pending task, ID must be set by the caller
func (r *TaskRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	now := utcNow()
	task.EnqueuedAt, task.UpdatedAt = now, now
	if task.RunAt.IsZero() {
		task.RunAt = now
	}
	task.State = domain.TaskPending

	query := `
		INSERT INTO tasks (id, name, args, state, attempts, last_error, run_at, enqueued_at, updated_at)
		VALUES (:id, :name, :args, :state, :attempts, :last_error, :run_at, :enqueued_at, :updated_at)
	`
	return withRetry(ctx, r.inTx, func() error {
		if _, err := sqlx.NamedExecContext(ctx, r.db, query, toTaskSQL(task)); err != nil {
			if isUniqueError(err) {
				return fmt.Errorf("create task %s: %w", task.ID, domain.ErrDuplicate)
			}
			return fmt.Errorf("create task %s: %w", task.ID, err)
		}
		return nil
	})
}

// GetTask retrieves a task by ID
func (r *TaskRepository) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var t taskSQL
	if err := sqlx.GetContext(ctx, r.db, &t, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get task %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return toDomainTask(&t), nil
}

// ClaimTask atomically moves the oldest due pending task to running and counts the attempt.
// Returns domain.ErrNotFound if nothing is due.
func (r *TaskRepository) ClaimTask(ctx context.Context, now time.Time) (*domain.Task, error) {
	query := `
		UPDATE tasks SET state = 'running', attempts = attempts + 1, updated_at = ?
		WHERE id = (
			SELECT id FROM tasks WHERE state = 'pending' AND run_at <= ?
			ORDER BY run_at, enqueued_at LIMIT 1
		)
		RETURNING ` + taskColumns

	var t taskSQL
	err := withRetry(ctx, r.inTx, func() error {
		return sqlx.GetContext(ctx, r.db, &t, query, utcNow(), now.UTC())
	})
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("claim task: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("claim task: %w", err)
	}
	return toDomainTask(&t), nil
}

// CompleteTask marks a running task done
func (r *TaskRepository) CompleteTask(ctx context.Context, id string) error {
	return r.finish(ctx, id, domain.TaskDone, "")
}

// KillTask marks a task dead, it will never run again
func (r *TaskRepository) KillTask(ctx context.Context, id, lastErr string) error {
	return r.finish(ctx, id, domain.TaskDead, lastErr)
}

// RetryTask returns a task to pending, due at runAt
func (r *TaskRepository) RetryTask(ctx context.Context, id string, runAt time.Time, lastErr string) error {
	return withRetry(ctx, r.inTx, func() error {
		res, err := r.db.ExecContext(ctx,
			"UPDATE tasks SET state = 'pending', run_at = ?, last_error = ?, updated_at = ? WHERE id = ?",
			runAt.UTC(), lastErr, utcNow(), id)
		if err != nil {
			return fmt.Errorf("retry task %s: %w", id, err)
		}
		return checkAffected(res, "task", id)
	})
}

// RequeueRunning returns tasks left running by a stopped process to pending
func (r *TaskRepository) RequeueRunning(ctx context.Context) (int64, error) {
	var n int64
	err := withRetry(ctx, r.inTx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE tasks SET state = 'pending', updated_at = ? WHERE state = 'running'", utcNow())
		if err != nil {
			return fmt.Errorf("requeue running tasks: %w", err)
		}
		if n, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		return nil
	})
	return n, err
}

// CountTasks returns the number of tasks in the given state
func (r *TaskRepository) CountTasks(ctx context.Context, state domain.TaskState) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, "SELECT COUNT(*) FROM tasks WHERE state = ?", string(state)); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

func (r *TaskRepository) finish(ctx context.Context, id string, state domain.TaskState, lastErr string) error {
	return withRetry(ctx, r.inTx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE tasks SET state = ?, last_error = ?, updated_at = ? WHERE id = ?",
			string(state), lastErr, utcNow(), id)
		if err != nil {
			return fmt.Errorf("set task %s %s: %w", id, state, err)
		}
		return checkAffected(res, "task", id)
	})
}

func toTaskSQL(t *domain.Task) *taskSQL {
	return &taskSQL{
		ID:         t.ID,
		Name:       t.Name,
		Args:       t.Args,
		State:      string(t.State),
		Attempts:   t.Attempts,
		LastError:  t.LastError,
		RunAt:      t.RunAt.UTC(),
		EnqueuedAt: t.EnqueuedAt.UTC(),
		UpdatedAt:  t.UpdatedAt.UTC(),
	}
}

func toDomainTask(t *taskSQL) *domain.Task {
	return &domain.Task{
		ID:         t.ID,
		Name:       t.Name,
		Args:       t.Args,
		State:      domain.TaskState(t.State),
		Attempts:   t.Attempts,
		LastError:  t.LastError,
		RunAt:      t.RunAt,
		EnqueuedAt: t.EnqueuedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
