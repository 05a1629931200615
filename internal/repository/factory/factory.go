// Package factory creates repositories based on the configured database
// driver. It lives outside the repository package so that driver packages
// can depend on the repository interfaces without an import cycle.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/repository/postgres"
	"github.com/taskvault/taskvault/internal/repository/sqlite"
)

// Result contains the created repositories and database handle.
type Result struct {
	Repos    *repository.Repositories
	Database repository.DatabaseHealth
}

// New creates repositories for the configured driver and applies the
// embedded schema migrations.
func New(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Result, error) {
	switch cfg.Driver {
	case "postgres":
		return newPostgres(ctx, cfg, logger)
	case "sqlite":
		return newSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

func newPostgres(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Result, error) {
	db, err := postgres.NewDB(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate PostgreSQL schema: %w", err)
	}

	return &Result{
		Repos: &repository.Repositories{
			User:   postgres.NewUserRepository(db),
			APIKey: postgres.NewAPIKeyRepository(db),
			Todo:   postgres.NewTodoRepository(db),
		},
		Database: db,
	}, nil
}

func newSQLite(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Result, error) {
	sqliteCfg := sqlite.DefaultConfig(cfg.Path)
	if cfg.JournalMode != "" {
		sqliteCfg.JournalMode = cfg.JournalMode
	}
	if cfg.BusyTimeout > 0 {
		sqliteCfg.BusyTimeout = cfg.BusyTimeout
	}
	if cfg.SynchronousMode != "" {
		sqliteCfg.SynchronousMode = cfg.SynchronousMode
	}

	db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate SQLite schema: %w", err)
	}

	return &Result{
		Repos: &repository.Repositories{
			User:   sqlite.NewUserRepository(db),
			APIKey: sqlite.NewAPIKeyRepository(db),
			Todo:   sqlite.NewTodoRepository(db),
		},
		Database: db,
	}, nil
}
