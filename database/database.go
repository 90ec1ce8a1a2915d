package database

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resqfood-api/config"
	"resqfood-api/models"
)

// Open connects to the configured store and migrates the schema. The handle
// is returned to the caller and injected into the repositories; nothing in
// this package keeps global state.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	if cfg.DatabaseURL != "" {
		dial = postgres.Open(cfg.DatabaseURL)
	} else {
		dial = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.User{}, &models.Donation{}); err != nil {
		return nil, err
	}
	return db, nil
}
