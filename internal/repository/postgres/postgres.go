// Package postgres implements the repository interfaces on PostgreSQL using
// a pgx connection pool.
//
// Queries go through pgxpool directly. Migrations run through golang-migrate,
// which needs a database/sql handle; stdlib.OpenDBFromPool provides one that
// borrows connections from the same pool.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ repository.Store = (*DB)(nil)

// SQLSTATE codes for the two constraint kinds the services care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type DB struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and applies all pending migrations.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	db, err := Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: running migrations: %w", err)
	}

	return db, nil
}

// Open connects without touching the schema.
func Open(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() error {
	db.pool.Close()
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

func (db *DB) MigrateUp() error {
	return db.withMigrator(func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("applying migrations: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func (db *DB) MigrateDown() error {
	return db.withMigrator(func(m *migrate.Migrate) error {
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("rolling back migration: %w", err)
		}
		return nil
	})
}

func (db *DB) MigrationVersion() (version uint, dirty bool, err error) {
	err = db.withMigrator(func(m *migrate.Migrate) error {
		var verr error
		version, dirty, verr = m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			version, dirty = 0, false
			return nil
		}
		if verr != nil {
			return fmt.Errorf("reading migration version: %w", verr)
		}
		return nil
	})
	return version, dirty, err
}

// withMigrator runs fn against a migrator bound to a throwaway database/sql
// handle. Closing that handle releases its connection back to the pool.
func (db *DB) withMigrator(fn func(m *migrate.Migrate) error) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.pool)
	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	return fn(m)
}

// translate maps constraint SQLSTATEs onto the repository sentinels.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %w", repository.ErrUniqueViolation, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %w", repository.ErrForeignKeyViolation, err)
	}
	return err
}

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func checkAffected(tag pgconn.CommandTag, resource string, id int64) error {
	if tag.RowsAffected() == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
