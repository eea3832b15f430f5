package database

import (
	"fmt"
	"log"

	"github.com/Ananth-NQI/fraudshield-backend/internal/config"
	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the PostgreSQL connection string from the configuration
func DSN(cfg *config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}

	// For Cloud Run with Cloud SQL
	if cfg.InstanceConnectionName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceConnectionName, cfg.DBUser, cfg.DBPass, cfg.DBName)
	}

	host := cfg.DBHost
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBPort)
}

// Connect opens the audit database and migrates its schema
func Connect(cfg *config.Config) (*gorm.DB, error) {
	if cfg.InstanceConnectionName != "" {
		log.Printf("Connecting to Cloud SQL via socket: %s", cfg.InstanceConnectionName)
	} else {
		log.Println("Connecting to PostgreSQL")
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.VerificationEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database connected successfully!")
	return db, nil
}
