package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shamanth-8/drones/internal/logging"
	gormModels "github.com/Shamanth-8/drones/internal/models/gorm"
)

// InitPostgresORM opens the postgres store database.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	logging.Info("Connected to Postgres via GORM")
	return db, nil
}

// InitSQLiteORM opens a sqlite database file; ":memory:" is accepted for tests.
func InitSQLiteORM(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	logging.Info("Opened SQLite via GORM", "path", path)
	return db, nil
}

// Migrate creates the record store and sync history tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&gormModels.RecordTable{},
		&gormModels.RecordRow{},
		&gormModels.SyncHistory{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
