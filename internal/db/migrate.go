package db

import (
	"fmt"

	"github.com/brightline-events/siteadmin/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted model.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: migrate: nil connection")
	}
	errMigrate := conn.AutoMigrate(
		&models.AdminAccount{},
		&models.Testimonial{},
		&models.CompanyInfo{},
		&models.ContactMessage{},
	)
	if errMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errMigrate)
	}
	return nil
}
