package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPgxPool creates a new PostgreSQL connection pool. When ping is set the
// database must answer before the pool is returned.
func NewPgxPool(ctx context.Context, databaseURL string, ping bool) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	config.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}
	return pool, nil
}

// RunMigrations applies every pending "up" migration found at migrationsPath
// (a golang-migrate source URL such as file://migrations). It reports whether
// anything was applied.
func RunMigrations(databaseURL, migrationsPath string) (applied bool, err error) {
	// golang-migrate needs a database/sql handle; the pgx stdlib driver keeps it on the same driver as the pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer migrationDB.Close()
	if err := migrationDB.Ping(); err != nil {
		return false, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return false, fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	switch {
	case upErr != nil && !errors.Is(upErr, migrate.ErrNoChange):
		return false, fmt.Errorf("failed to apply migrations: %w", upErr)
	case sourceErr != nil:
		return false, fmt.Errorf("migration source error: %w", sourceErr)
	case dbErr != nil:
		return false, fmt.Errorf("migration database error: %w", dbErr)
	}
	return upErr == nil, nil
}
