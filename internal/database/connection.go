// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/models"
)

// Initialize opens the connection and tunes the pool. The handle is
// returned to the caller and injected into services; nothing in this
// package keeps a global.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if cfg.LogLevel == "info" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SeedInitialData creates the default admin account and, when the catalog
// is empty, a handful of sample products so a fresh install is browsable.
func SeedInitialData(db *gorm.DB) error {
	var adminCount int64
	db.Model(&models.User{}).Where("is_admin = ?", true).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Name:    "Admin",
			Email:   "admin@storefront.local",
			IsAdmin: true,
		}
		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logrus.Info("Default admin user created")
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		var admin models.User
		if err := db.Where("is_admin = ?", true).First(&admin).Error; err != nil {
			return fmt.Errorf("failed to find admin for seeding: %w", err)
		}

		samples := []models.Product{
			{UserID: admin.ID, Name: "Airpods Wireless Bluetooth Headphones", Image: "/images/airpods.jpg", Brand: "Apple", Category: "Electronics", Description: "Bluetooth technology lets you connect it with compatible devices wirelessly.", Price: 89.99, CountInStock: 10, Rating: 4.5, NumReviews: 12},
			{UserID: admin.ID, Name: "iPhone 13 Pro 256GB Memory", Image: "/images/phone.jpg", Brand: "Apple", Category: "Electronics", Description: "A transformative triple-camera system that adds tons of capability.", Price: 599.99, CountInStock: 7, Rating: 4.0, NumReviews: 8},
			{UserID: admin.ID, Name: "Cannon EOS 80D DSLR Camera", Image: "/images/camera.jpg", Brand: "Cannon", Category: "Electronics", Description: "Characterized by versatile imaging specs and robust focusing.", Price: 929.99, CountInStock: 5, Rating: 3.0, NumReviews: 12},
		}
		if err := db.Create(&samples).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		logrus.WithField("count", len(samples)).Info("Sample catalog seeded")
	}

	return nil
}

// WithTransaction runs fn inside a transaction, rolling back on error or
// panic.
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
