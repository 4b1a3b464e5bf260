// Package db opens the todo Postgres database after applying migrations.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gotodo/internal/todo/config"
	"gotodo/pkg/db/postgres"
	"gotodo/pkg/logger"
)

const (
	LogDBInitializing    = "initializing todo database"
	LogDBInitialized     = "todo database initialized successfully"
	LogMigrationStarting = "starting database migrations for todo service"

	ErrDBMigrations      = "failed to apply todo database migrations"
	ErrDBConnection      = "failed to connect to todo database"
	ErrGetPath           = "failed to get path"
	ErrDBCheckConnection = "error checking the database connection"
)

const filePrefix = "file://"

// DB is the todo service database handle.
type DB struct {
	database *postgres.Database
}

// New applies migrations from migrationsDir and opens the pool.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsURL(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)
	return &DB{database: database}, nil
}

// MigrationsURL turns a directory into a file:// source URL.
func MigrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filePrefix + dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + abs, nil
}

// Close releases the pool.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool returns the connection pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
