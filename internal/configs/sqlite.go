package config

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-timer.com/task-timer/internal/models"
)

// NewDatabaseClient opens the event journal and migrates its schema.
func NewDatabaseClient(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	if err := db.AutoMigrate(&model.TaskEvent{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	// sqlite allows a single writer; shared in-memory databases also need the
	// connection kept open.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
