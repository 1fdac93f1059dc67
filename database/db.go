package database

import (
	"fmt"
	"os"
	"time"

	"cobbler-shop/logger"
	"cobbler-shop/models/billing"
	"cobbler-shop/models/delivery"
	"cobbler-shop/models/enquiry"
	"cobbler-shop/models/expense"
	"cobbler-shop/models/inventory"
	"cobbler-shop/models/log"
	"cobbler-shop/models/photo"
	"cobbler-shop/models/pickup"
	"cobbler-shop/models/service"
	"cobbler-shop/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB creates the database if absent, opens a pooled connection and
// runs migrations. The returned handle is passed to every controller;
// there is no package-level singleton.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "3306")
	dbname := getEnv("DB_DATABASE", "cobbler_shop")
	username := getEnv("DB_USERNAME", "root")
	password := os.Getenv("DB_PASSWORD")

	if err := ensureDatabase(host, port, username, password, dbname); err != nil {
		logger.Error("Failed to ensure database exists", err)
		return nil, err
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		username, password, host, port, dbname)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	return db, nil
}

// ensureDatabase connects at server level and creates the target schema
// when it does not exist yet.
func ensureDatabase(host, port, username, password, dbname string) error {
	serverDSN := fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
		username, password, host, port)

	server, err := gorm.Open(mysql.Open(serverDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}

	stmt := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", dbname)
	if err := server.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create database %s: %w", dbname, err)
	}

	sqlDB, err := server.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate runs auto migration for all models in dependency order so
// foreign keys always find their referenced tables. Shared between the
// real MySQL database and in-memory test databases.
func Migrate(db *gorm.DB) error {
	// Stage 1: tables without foreign keys
	stage1Models := []interface{}{
		&user.User{},
		&enquiry.Enquiry{},
		&inventory.InventoryItem{},
		&expense.Employee{},
		&log.Log{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: tables referencing stage 1
	stage2Models := []interface{}{
		&pickup.PickupDetail{},
		&service.ServiceDetail{},
		&service.ServiceType{},
		&photo.Photo{},
		&delivery.DeliveryDetail{},
		&billing.BillingDetail{},
		&inventory.InventoryHistory{},
		&expense.Expense{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: tables referencing stage 2
	if err := db.AutoMigrate(&billing.BillingItem{}); err != nil {
		return fmt.Errorf("failed to migrate %T: %w", &billing.BillingItem{}, err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
