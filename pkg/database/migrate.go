package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/personal_finance_tracker/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// RunPostgresMigrations applies every pending migration to the Postgres database at
// databaseURL. It reports whether anything was applied.
func RunPostgresMigrations(databaseURL string) (bool, error) {
	// Open a temporary standard sql.DB connection for migrations
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("open migration database: %w", err)
	}
	defer migrationDB.Close()

	if err := migrationDB.Ping(); err != nil {
		return false, fmt.Errorf("ping migration database: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("create postgres driver: %w", err)
	}
	return runMigrations(migrations.PostgresDir, "postgres", driver)
}

// RunSQLiteMigrations applies every pending migration to db. The handle stays open.
func RunSQLiteMigrations(db *sql.DB) (bool, error) {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return false, fmt.Errorf("create sqlite driver: %w", err)
	}
	return runMigrations(migrations.SQLiteDir, "sqlite", driver)
}

func runMigrations(dir, databaseName string, driver database.Driver) (bool, error) {
	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return false, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		return false, fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("run migrations: %w", upErr)
	}
	return !errors.Is(upErr, migrate.ErrNoChange), nil
}
