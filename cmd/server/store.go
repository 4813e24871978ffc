package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VinicciusWirz/social-postify/internal/config"
	"github.com/VinicciusWirz/social-postify/internal/repository"
	"github.com/VinicciusWirz/social-postify/internal/repository/postgres"
	sqliteRepo "github.com/VinicciusWirz/social-postify/internal/repository/sqlite"
)

// migrator is a Store that can also manage its own schema. Both backends
// implement it.
type migrator interface {
	repository.Store
	MigrateUp() error
	MigrateDown() error
	MigrationVersion() (version uint, dirty bool, err error)
}

var (
	_ migrator = (*sqliteRepo.DB)(nil)
	_ migrator = (*postgres.DB)(nil)
)

// openStore connects to the configured backend. With applyMigrations the
// schema is brought up to date before returning.
func openStore(ctx context.Context, cfg *config.Config, applyMigrations bool) (migrator, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		if applyMigrations {
			return postgres.New(ctx, cfg.DatabaseURL)
		}
		return postgres.Open(ctx, cfg.DatabaseURL)

	case config.DriverSQLite:
		// Create the data directory on first run, like `mkdir -p`.
		if cfg.DBPath != ":memory:" {
			dir := filepath.Dir(cfg.DBPath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
		if applyMigrations {
			return sqliteRepo.New(cfg.DBPath)
		}
		return sqliteRepo.Open(cfg.DBPath)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}
