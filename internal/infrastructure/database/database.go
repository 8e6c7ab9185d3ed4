package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

// Database configuration constants.
const (
	// dirPermissions is the permission mode for the database directory.
	dirPermissions = 0750

	// filePermissions is the permission mode for the database file.
	filePermissions = 0600

	// msPerSecond converts seconds to milliseconds.
	msPerSecond = 1000

	// connectionTimeout is the timeout for verifying database connectivity.
	connectionTimeout = 5 * time.Second

	// connMaxIdleTime is how long idle connections are kept open.
	connMaxIdleTime = 30 * time.Minute
)

// Dialect identifies the SQL flavour behind a DB.
type Dialect string

// Supported dialects. The values match config.DriverSQLite and config.DriverPostgres.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB wraps a sql.DB connection with recipe manager functionality.
//
// Queries are written once with ? placeholders; DB rewrites them for the
// active dialect before they reach the driver.
type DB struct {
	*sql.DB
	path    string
	dialect Dialect
}

// Config contains database configuration options.
// These map to the database section of config.yaml.
type Config struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string

	// Path is the filesystem path to the SQLite database file.
	// The directory will be created if it doesn't exist.
	Path string

	// DSN is the PostgreSQL connection string.
	DSN string

	// WALMode enables Write-Ahead Logging for better concurrent access (SQLite only).
	WALMode bool

	// BusyTimeout is the maximum time to wait for a database lock in seconds (SQLite only).
	BusyTimeout int
}

// Querier is the subset of database/sql used by repositories.
// Both *DB and *Tx satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open creates a new database connection for the configured driver and
// verifies it with a ping.
func Open(cfg Config) (*DB, error) {
	switch Dialect(cfg.Driver) {
	case DialectSQLite, "":
		return openSQLite(cfg)
	case DialectPostgres:
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func openSQLite(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// See: https://github.com/mattn/go-sqlite3#connection-string
	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path,
		cfg.BusyTimeout*msPerSecond,
	)
	if cfg.WALMode {
		connStr += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite only supports one writer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	db := &DB{DB: sqlDB, path: cfg.Path, dialect: DialectSQLite}
	if err := db.verify(); err != nil {
		return nil, err
	}

	_ = os.Chmod(cfg.Path, filePermissions) //nolint:errcheck // file may not exist until first write

	return db, nil
}

func openPostgres(cfg Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("opening database: %w", ErrMissingDSN)
	}

	sqlDB, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	db := &DB{DB: sqlDB, dialect: DialectPostgres}
	if err := db.verify(); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *DB) verify() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.DB.Close() //nolint:errcheck // best effort cleanup on error path
		return fmt.Errorf("verifying database connection: %w", err)
	}
	return nil
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Path returns the filesystem path to the SQLite database file.
// It is empty for PostgreSQL.
func (db *DB) Path() string {
	return db.path
}

// Dialect reports which SQL flavour this connection speaks.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// HealthCheck verifies the database is accessible and functioning.
func (db *DB) HealthCheck(ctx context.Context) error {
	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// ExecContext executes a query that doesn't return rows (INSERT, UPDATE, DELETE).
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := db.DB.ExecContext(ctx, Rebind(db.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return result, nil
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, Rebind(db.dialect, query), args...)
}

// QueryRowContext executes a query that returns at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, Rebind(db.dialect, query), args...)
}

// Tx is a transaction that rebinds placeholders like DB does.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

// ExecContext executes a statement inside the transaction.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := t.tx.ExecContext(ctx, Rebind(t.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return result, nil
}

// QueryContext executes a row-returning query inside the transaction.
func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, Rebind(t.dialect, query), args...)
}

// QueryRowContext executes a single-row query inside the transaction.
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, Rebind(t.dialect, query), args...)
}

// WithTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back on error or panic. Panics are re-raised after the rollback.
//
//	err := db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
//	    _, err := q.ExecContext(ctx, "UPDATE recipes SET updated_at = ? WHERE id = ?", now, id)
//	    return err
//	})
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) (err error) {
	sqlTx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback() //nolint:errcheck // panicking anyway
			panic(p)
		}
		if err != nil {
			_ = sqlTx.Rollback() //nolint:errcheck // original error is more useful
			return
		}
		if cerr := sqlTx.Commit(); cerr != nil {
			err = fmt.Errorf("committing transaction: %w", cerr)
		}
	}()

	return fn(ctx, &Tx{tx: sqlTx, dialect: db.dialect})
}
