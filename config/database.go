package config

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"docuvault/models"
)

// InitDB opens the database and migrates the schema. TranslateError is
// required so duplicate-key races surface as gorm.ErrDuplicatedKey.
func InitDB(cfg Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.MetadataField{},
		&models.DocumentType{},
		&models.DocumentTypeField{},
		&models.Category{},
		&models.Document{},
		&models.DocumentVersion{},
		&models.MetadataValue{},
	)
}
