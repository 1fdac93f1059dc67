package seeders

import (
	"log"
	"os"

	"cobbler-shop/models/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser creates the default admin account when the users table
// is empty so a fresh install can sign in immediately.
func SeedAdminUser(db *gorm.DB) {
	var count int64
	if err := db.Model(&user.User{}).Count(&count).Error; err != nil {
		log.Printf("⚠️ Failed to check users table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️ Failed to hash admin password: %v", err)
		return
	}

	admin := user.User{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("⚠️ Failed to seed admin user: %v", err)
		return
	}
	log.Printf("✅ Seeded default admin user '%s'", username)
}
