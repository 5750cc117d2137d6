package database

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
	"github.com/storekeep/pos-api/internal/config"
	"github.com/storekeep/pos-api/internal/domain/entity"
	"github.com/storekeep/pos-api/internal/domain/enum"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff
		&entity.User{},

		// Catalog
		&entity.Category{},
		&entity.Product{},
		&entity.StoreItem{},

		// Customers
		&entity.LoyaltyCard{},

		// Sales
		&entity.Receipt{},
		&entity.ReceiptItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the initial manager account if configured via
// environment variables and no user with that username exists yet.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminUsername != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("username = ?", adminUsername).First(&existing).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Store Manager"
				}
				admin := entity.User{
					Username:  adminUsername,
					Password:  string(hashedPassword),
					FullName:  adminName,
					Role:      enum.RoleManager,
					StartDate: time.Now(),
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create manager user: %v", err)
				} else {
					log.Printf("Manager user created: %s", adminUsername)
				}
			}
		} else {
			log.Printf("Manager user already exists: %s", adminUsername)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
