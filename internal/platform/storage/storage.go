// Package storage opens the repositories for the configured backend and runs its
// schema migrations.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_tracker/internal/platform/config"
	"github.com/SscSPs/personal_finance_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/personal_finance_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/personal_finance_tracker/internal/repositories/filestore"
	"github.com/SscSPs/personal_finance_tracker/internal/repositories/sessionstore"
	"github.com/SscSPs/personal_finance_tracker/pkg/database"
)

// Open builds the repositories for cfg.StorageBackend. The returned close function
// releases every connection that was opened and is safe to call once.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		repo, err := filestore.NewFileTransactionRepository(cfg.TransactionsFile)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using file store", slog.String("path", cfg.TransactionsFile))
		return filestore.NewRepositoryProvider(repo), func() {}, nil

	case config.BackendSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		applied, err := database.RunSQLiteMigrations(db)
		if err != nil {
			database.CloseSQLiteDB(db)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logMigrations(logger, applied)

		sessions, closeSessions := openSessionStore(ctx, cfg, logger)
		return sqlite.NewRepositoryProvider(db, sessions), func() {
			closeSessions()
			database.CloseSQLiteDB(db)
		}, nil

	case config.BackendPostgres:
		logger.Info("Running database migrations...")
		applied, err := database.RunPostgresMigrations(cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logMigrations(logger, applied)

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}

		sessions, closeSessions := openSessionStore(ctx, cfg, logger)
		return pgsql.NewRepositoryProvider(pool, sessions), func() {
			closeSessions()
			database.ClosePgxPool(pool)
		}, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// openSessionStore prefers Redis when REDIS_URL is set and reachable, and falls back to
// an in-process store otherwise.
func openSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.SessionStore, func()) {
	if cfg.RedisURL == "" {
		logger.Info("Using in-memory session store")
		return sessionstore.NewMemoryStore(), func() {}
	}

	client, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("Failed to connect to Redis, using in-memory session store", slog.String("error", err.Error()))
		return sessionstore.NewMemoryStore(), func() {}
	}

	logger.Info("Using Redis session store")
	return sessionstore.NewRedisStore(client), func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing Redis client", slog.String("error", err.Error()))
		}
	}
}

func logMigrations(logger *slog.Logger, applied bool) {
	if applied {
		logger.Info("Database migrations applied successfully.")
		return
	}
	logger.Info("No new migrations to apply.")
}
