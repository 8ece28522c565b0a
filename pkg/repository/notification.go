package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/umputun/rssfeeder/pkg/domain"
)

const notificationColumns = `id, feed_id, owner, title, message, is_error, state, created_at, updated_at`

// NotificationRepository handles notification-related database operations
type NotificationRepository struct {
	db   sqlx.ExtContext
	inTx bool
}

type notificationSQL struct {
	ID        int64     `db:"id"`
	FeedID    int64     `db:"feed_id"`
	Owner     string    `db:"owner"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	IsError   bool      `db:"is_error"`
	State     string    `db:"state"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NotificationFilter limits GetNotifications results, zero values match everything
type NotificationFilter struct {
	Owner  string
	FeedID int64
	State  domain.EntryState
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(database *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: database}
}

// CreateNotification appends a notification, new notifications are always unread
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	now := utcNow()
	n.CreatedAt, n.UpdatedAt = now, now
	n.State = domain.EntryUnread

	query := `
		INSERT INTO notifications (feed_id, owner, title, message, is_error, state, created_at, updated_at)
		VALUES (:feed_id, :owner, :title, :message, :is_error, :state, :created_at, :updated_at)
	`
	return withRetry(ctx, r.inTx, func() error {
		res, err := sqlx.NamedExecContext(ctx, r.db, query, toNotificationSQL(n))
		if err != nil {
			return fmt.Errorf("create notification for feed %d: %w", n.FeedID, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		n.ID = id
		return nil
	})
}

// GetNotifications returns notifications matching the filter in creation order
func (r *NotificationRepository) GetNotifications(ctx context.Context, filter NotificationFilter) ([]domain.Notification, error) {
	query := "SELECT " + notificationColumns + " FROM notifications WHERE 1 = 1"
	var args []any
	if filter.Owner != "" {
		query += " AND owner = ?"
		args = append(args, filter.Owner)
	}
	if filter.FeedID != 0 {
		query += " AND feed_id = ?"
		args = append(args, filter.FeedID)
	}
	if filter.State != "" {
		query += " AND state = ?"
		args = append(args, string(filter.State))
	}
	query += " ORDER BY id"

	var rows []notificationSQL
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	return lo.Map(rows, func(n notificationSQL, _ int) domain.Notification { return toDomainNotification(&n) }), nil
}

// SetNotificationState marks a notification read or unread
func (r *NotificationRepository) SetNotificationState(ctx context.Context, id int64, state domain.EntryState) error {
	return withRetry(ctx, r.inTx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE notifications SET state = ?, updated_at = ? WHERE id = ?",
			string(state), utcNow(), id)
		if err != nil {
			return fmt.Errorf("set notification state: %w", err)
		}
		return checkAffected(res, "notification", id)
	})
}

func toNotificationSQL(n *domain.Notification) *notificationSQL {
	return &notificationSQL{
		ID:        n.ID,
		FeedID:    n.FeedID,
		Owner:     n.Owner,
		Title:     n.Title,
		Message:   n.Message,
		IsError:   n.IsError,
		State:     string(n.State),
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
	}
}

func toDomainNotification(n *notificationSQL) domain.Notification {
	return domain.Notification{
		ID:        n.ID,
		FeedID:    n.FeedID,
		Owner:     n.Owner,
		Title:     n.Title,
		Message:   n.Message,
		IsError:   n.IsError,
		State:     domain.EntryState(n.State),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
