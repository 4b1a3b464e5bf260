package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gotodo/pkg/logger"
)

const (
	LogOpening = "opening SQLite database"
	LogOpened  = "SQLite database ready"

	ErrOpen    = "failed to open SQLite database"
	ErrMigrate = "failed to migrate SQLite schema"
)

// Open opens (creating if needed) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*gorm.DB, error) {
	log := logger.Log(ctx).With(zap.String("path", path))
	log.Info(ctx, LogOpening)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Error(ctx, ErrOpen, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpen, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpen, err)
	}
	// SQLite allows one writer; one connection also keeps ":memory:" a single database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).AutoMigrate(&taskModel{}, &userModel{}); err != nil {
		log.Error(ctx, ErrMigrate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMigrate, err)
	}

	log.Info(ctx, LogOpened)
	return db, nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
