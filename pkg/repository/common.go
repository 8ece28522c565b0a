package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/rssfeeder/pkg/domain"
)

// errCritical is the stop error passed to repeater, matched by criticalError
var errCritical = errors.New("critical database error")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

// Is makes errors.Is(err, errCritical) true, this is how repeater recognizes stop errors
func (e *criticalError) Is(target error) bool {
	return target == errCritical
}

// unwrapCritical returns the original error hidden in criticalError
func unwrapCritical(err error) error {
	var ce *criticalError
	if errors.As(err, &ce) {
		return ce.err
	}
	return err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// isUniqueError checks if an error is a unique constraint violation
func isUniqueError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isNoRows checks for sql.ErrNoRows
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// checkAffected reports domain.ErrNotFound if a statement touched no rows
func checkAffected(res sql.Result, what string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", what, id, domain.ErrNotFound)
	}
	return nil
}

// withRetry runs fn and retries it on lock errors. Inside a transaction fn runs once,
// the transaction as a whole is retried by InTransaction.
func withRetry(ctx context.Context, inTx bool, fn func() error) error {
	if inTx {
		return fn()
	}
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err != nil && !isLockError(err) {
			return &criticalError{err: err}
		}
		return err
	}, errCritical)
	return unwrapCritical(err)
}

// utcNow is the timestamp source for created_at/updated_at columns
func utcNow() time.Time {
	return time.Now().UTC()
}
