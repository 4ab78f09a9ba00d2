// Package database opens the configured key-value storage.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"wordreader/internal/config"
	"wordreader/internal/repository"
	"wordreader/internal/repository/memory"
	"wordreader/internal/repository/postgres"
	"wordreader/internal/repository/sqlite"
)

// Connection retry policy for PostgreSQL
var (
	maxRetries = 30
	retryDelay = 2 * time.Second
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the key-value repository selected by cfg.Storage.Driver and
// a closer releasing its connection
func Open(cfg *config.Config, logger *zap.Logger) (repository.KeyValueRepository, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory storage; saved tables and users are lost on exit")
		return memory.NewKVRepo(), nopCloser{}, nil

	case config.DriverSqlite3:
		db, err := sqlite.Open(cfg.Storage.File)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("SQLite storage opened", zap.String("file", cfg.Storage.File))
		return sqlite.NewKVRepo(db), db, nil

	case config.DriverPostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection established")

		if err := runMigrations(db, cfg.Storage.MigrationsPath, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewKVRepo(db), db, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies pending schema migrations from sourceURL
func runMigrations(db *sql.DB, sourceURL string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
