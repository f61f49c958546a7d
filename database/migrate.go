package database

import (
	"fmt"

	"accomform_backend/internal/config"
	"accomform_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens the shared GORM connection using the configured DSN.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate brings the schema up to date.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Submission{},
		&models.SubmissionLog{},
	)
}
