package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
)

// MigrationsFS holds the embedded migration files, one directory per
// dialect ("sqlite", "postgres"). It is set by the migrations package:
//
//	import _ "github.com/nerrad567/recipe-manager/migrations"
var MigrationsFS fs.FS

// ErrNoMigrations is returned when MigrationsFS was never registered.
var ErrNoMigrations = errors.New("no migrations registered")

// MigrationStatus describes one migration and whether it has been applied.
type MigrationStatus struct {
	Version   int64
	Source    string
	Applied   bool
	AppliedAt time.Time
}

// Migrate applies all pending migrations in version order.
//
// Each migration runs in its own transaction. If migration N fails,
// migrations before it stay committed and re-running Migrate continues from N.
func (db *DB) Migrate(ctx context.Context) error {
	p, err := db.migrationProvider()
	if err != nil {
		return err
	}

	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// MigrateDown rolls back the most recently applied migration.
func (db *DB) MigrateDown(ctx context.Context) error {
	p, err := db.migrationProvider()
	if err != nil {
		return err
	}

	if _, err := p.Down(ctx); err != nil {
		return fmt.Errorf("rolling back migration: %w", err)
	}
	return nil
}

// MigrationStatus lists every known migration with its applied state.
func (db *DB) MigrationStatus(ctx context.Context) ([]MigrationStatus, error) {
	p, err := db.migrationProvider()
	if err != nil {
		return nil, err
	}

	results, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading migration status: %w", err)
	}

	statuses := make([]MigrationStatus, 0, len(results))
	for _, r := range results {
		statuses = append(statuses, MigrationStatus{
			Version:   r.Source.Version,
			Source:    r.Source.Path,
			Applied:   r.State == goose.StateApplied,
			AppliedAt: r.AppliedAt,
		})
	}
	return statuses, nil
}

func (db *DB) migrationProvider() (*goose.Provider, error) {
	if MigrationsFS == nil {
		return nil, ErrNoMigrations
	}

	dir, err := fs.Sub(MigrationsFS, string(db.dialect))
	if err != nil {
		return nil, fmt.Errorf("locating %s migrations: %w", db.dialect, err)
	}

	dialect := goose.DialectSQLite3
	if db.dialect == DialectPostgres {
		dialect = goose.DialectPostgres
	}

	p, err := goose.NewProvider(dialect, db.DB, dir)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return p, nil
}
