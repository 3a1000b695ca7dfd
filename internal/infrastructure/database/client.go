package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eslsoft/flashdeck/internal/infrastructure/config"
	"github.com/eslsoft/flashdeck/internal/infrastructure/database/model"
)

// NewClient opens a gorm DB for the configured driver and returns a cleanup
// function closing the underlying connection pool.
func NewClient(cfg *config.Config) (*gorm.DB, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database driver: %w", err)
	}

	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database dsn: %w", err)
	}

	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if cfg.Database.LogSQL {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	switch driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("access sql db: %w", err)
	}

	if driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON;").Error; err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	cleanup := func() {
		_ = sqlDB.Close()
	}
	return db, cleanup, nil
}

// Migrate creates or updates the schema for all tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Deck{},
		&model.Card{},
		&model.ReviewLog{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
