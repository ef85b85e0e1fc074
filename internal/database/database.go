package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pageza/recipe-vault/backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects gorm to the SQL database selected by cfg.Storage.Backend.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		dialector = sqlite.Open(cfg.Storage.SQLitePath)
	case config.BackendPostgres:
		dialector = postgres.Open(cfg.Storage.PostgresDSN)
	default:
		return nil, fmt.Errorf("backend %q is not a SQL database", cfg.Storage.Backend)
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.Log.Level == "debug" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	if cfg.Storage.Backend == config.BackendSQLite {
		// sqlite serialises writers anyway
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	slog.Info("connected to database", "backend", cfg.Storage.Backend)
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
