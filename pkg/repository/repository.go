package repository

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql migrations.sql
var schemaFS embed.FS

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories contains all repository instances
type Repositories struct {
	Feed         *FeedRepository
	Entry        *EntryRepository
	Notification *NotificationRepository
	Task         *TaskRepository
	DB           *sqlx.DB
}

// Tx exposes repositories bound to a single database transaction
type Tx struct {
	Feed         *FeedRepository
	Entry        *EntryRepository
	Notification *NotificationRepository
}

// NewRepositories creates all repositories with a shared database connection
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:rssfeeder.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sqlx.Open("sqlite", withConnPragmas(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// journal mode is stored in the database file, the rest comes with every connection
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repositories{
		Feed:         NewFeedRepository(db),
		Entry:        NewEntryRepository(db),
		Notification: NewNotificationRepository(db),
		Task:         NewTaskRepository(db),
		DB:           db,
	}, nil
}

// connPragmas are applied by the driver to each new pool connection.
// foreign_keys is needed for entries and notifications to cascade with their feed.
var connPragmas = []struct{ name, value string }{
	{"busy_timeout", "5000"},
	{"foreign_keys", "1"},
	{"synchronous", "NORMAL"},
	{"cache_size", "-64000"},
	{"temp_store", "MEMORY"},
}

// withConnPragmas adds _pragma query parameters for the connection pragmas the dsn doesn't set itself
func withConnPragmas(dsn string) string {
	params := make([]string, 0, len(connPragmas))
	lower := strings.ToLower(dsn)
	for _, p := range connPragmas {
		if strings.Contains(lower, "_pragma="+p.name+"(") {
			continue
		}
		params = append(params, "_pragma="+p.name+"("+p.value+")")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// InTransaction runs fn with repositories bound to one transaction, committing if fn returns nil.
// Busy database errors on begin or commit retry the whole transaction, so fn must be safe to repeat.
// Nothing inside fn may use the non-transactional repositories, the pool can be a single connection.
func (r *Repositories) InTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		tx, err := r.DB.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("begin transaction: %w", err)}
		}

		if err := fn(&Tx{
			Feed:         &FeedRepository{db: tx, inTx: true},
			Entry:        &EntryRepository{db: tx, inTx: true},
			Notification: &NotificationRepository{db: tx, inTx: true},
		}); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return &criticalError{err: fmt.Errorf("transaction failed: %w (rollback also failed: %s)", err, rbErr.Error())}
			}
			if isLockError(err) {
				return err
			}
			return &criticalError{err: err}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("commit transaction: %w", err)}
		}
		return nil
	}, errCritical)
	return unwrapCritical(err)
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	return nil
}

// runMigrations executes idempotent statements from migrations.sql one by one
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	migrations, err := schemaFS.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, stmt := range splitStatements(string(migrations)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute migration %q: %w", stmt, err)
		}
	}
	return nil
}

// splitStatements splits sql text by semicolons, skipping comment-only lines
func splitStatements(text string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			statements = append(statements, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}
	return statements
}
